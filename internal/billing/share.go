package billing

import (
	"net/url"
	"strings"
)

const (
	shareBase     = "https://wa.me/"
	countryPrefix = "91"
)

// Message renders the chat summary of inv.
func Message(inv Invoice) string {
	t := inv.Totals
	var b strings.Builder
	b.WriteString("*" + inv.Company.Name + " - INVOICE*\n")
	b.WriteString("*" + inv.Company.Tagline + ", " + inv.Company.City + "*\n\n")
	b.WriteString("Bill Book No: " + inv.BillBookNumber + "\n")
	b.WriteString("Bill No: " + inv.BillNumber + "\n")
	b.WriteString("Date: " + inv.SaleDate + "\n\n")
	b.WriteString("*Customer:* " + inv.CustomerName + "\n")
	b.WriteString("Mobile: " + inv.CustomerMobile + "\n\n")
	b.WriteString("*Item Details:*\n")
	b.WriteString("Model: " + inv.Model + "\n")
	b.WriteString("Capacity: " + inv.Capacity + "\n")
	b.WriteString("Serial No: " + inv.SerialNumber + "\n\n")
	b.WriteString("Amount: " + FormatCurrency(t.Price) + "\n")
	b.WriteString("Other Charges: " + FormatCurrency(t.OtherCharges) + "\n")
	b.WriteString("Advance: " + FormatCurrency(t.Advance) + "\n")
	b.WriteString("*Balance: " + FormatCurrency(t.Balance) + "*\n\n")
	b.WriteString("Warranty: 1 Year from " + inv.SaleDate + "\n\n")
	b.WriteString("_Thank you for your purchase!_")
	return b.String()
}

// NormalizePhone keeps digits only and prefixes the country code to bare
// ten-digit numbers.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return countryPrefix + digits
	}
	return digits
}

// Share is a ready-to-open chat link.
type Share struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ShareLink builds the chat link for inv.
func ShareLink(inv Invoice) Share {
	msg := Message(inv)
	phone := NormalizePhone(inv.CustomerMobile)
	return Share{
		Phone:   phone,
		Message: msg,
		URL:     shareBase + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20"),
	}
}
