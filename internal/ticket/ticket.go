// Package ticket renders booking confirmations as PDF tickets carrying a
// signed QR code.
package ticket

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/resolver"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var ErrInvalidPayload = errors.New("invalid ticket payload")

// Payload returns "bookingID|signature" where signature is an HMAC-SHA256 of the id.
func Payload(bookingID, secret string) string {
	return bookingID + "|" + sign(bookingID, secret)
}

// Verify checks a payload produced by Payload and returns the booking id.
func Verify(payload, secret string) (string, error) {
	bookingID, sig, ok := strings.Cut(payload, "|")
	if !ok || bookingID == "" || sig == "" {
		return "", ErrInvalidPayload
	}
	if !hmac.Equal([]byte(sig), []byte(sign(bookingID, secret))) {
		return "", ErrInvalidPayload
	}
	return bookingID, nil
}

func sign(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Render builds the PDF ticket for a populated booking.
func Render(b resolver.BookingView, secret string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(Payload(b.ID, secret), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Cruise Booking Ticket")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %s", label, value))
		pdf.Ln(8)
	}

	line("Booking", b.ID)
	if b.User != nil {
		line("Guest", b.User.Name)
		line("Email", b.User.Email)
	}
	cruise, location := "Cruise Booking", "Bangkok"
	if b.Cruise != nil {
		cruise, location = b.Cruise.Title, b.Cruise.Location
	} else if b.PackageType != "" {
		cruise = b.PackageType
	}
	line("Cruise", cruise)
	line("Location", location)
	line("Date", b.CruiseDate.Format("2006-01-02"))
	line("Guests", fmt.Sprintf("%d", b.NumberOfGuests))
	line("Package", orDefault(b.PackageType, "Standard"))
	line("Time", orDefault(b.CruisingTime, "TBD"))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 45, 45, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
