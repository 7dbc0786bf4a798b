package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/cruiseline/cruise-booking-api/internal/resolver"
)

type Notifier interface {
	NotifyBooking(booking resolver.BookingView) error
}

// ChannelSender is the part of *discordgo.Session the notifier needs.
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   ChannelSender
	channelID string
}

func NewDiscordNotifier(session ChannelSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordSession opens a bot session for the given token.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyBooking(booking resolver.BookingView) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, BookingMessage(booking))
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

func BookingMessage(b resolver.BookingView) string {
	guest := b.UserID
	if b.User != nil {
		guest = fmt.Sprintf("%s (%s)", b.User.Name, b.User.Email)
	}

	cruise := "Cruise Booking"
	if b.Cruise != nil {
		cruise = fmt.Sprintf("%s, %s", b.Cruise.Title, b.Cruise.Location)
	} else if b.PackageType != "" {
		cruise = b.PackageType
	}

	packageStr := ""
	if b.PackageType != "" {
		packageStr = fmt.Sprintf("\n**Package:** %s", b.PackageType)
	}
	timeStr := ""
	if b.CruisingTime != "" {
		timeStr = fmt.Sprintf("\n**Time:** %s", b.CruisingTime)
	}

	return fmt.Sprintf("🛳️ **New Booking**\n**Guest:** %s\n**Cruise:** %s\n**Date:** %s\n**Guests:** %d%s%s",
		guest,
		cruise,
		b.CruiseDate.Format("2006-01-02"),
		b.NumberOfGuests,
		packageStr,
		timeStr,
	)
}
