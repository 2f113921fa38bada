package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
	"gopkg.in/gomail.v2"

	"tripnest_backend/internal/model"
	"tripnest_backend/pkg/config"
)

// Sender delivers composed messages. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	sender      Sender
	from        string
	agencyInbox string
	siteURL     string
	templates   *template.Template
}

// Template data structures
type LeadNotificationData struct {
	Reference   string
	ItemType    string
	ItemName    string
	ItemPrice   float64
	Category    string
	TotalAmount float64
	Items       []model.SelectedItem
	LeadName    string
	LeadEmail   string
	LeadPhone   string
	LeadMessage string
	AdminURL    string
}

type InquiryConfirmationData struct {
	Reference   string
	Name        string
	ItemName    string
	Category    string
	TotalAmount float64
	Items       []model.SelectedItem
	SiteURL     string
}

type LeadDigestData struct {
	Date     time.Time
	NewLeads []model.Lead
	Counts   map[model.LeadStatus]int
	AdminURL string
}

func NewEmailService(cfg config.MailConfig, siteURL string) (*EmailService, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("SMTP host is required")
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewEmailServiceWithSender(dialer, cfg.From, cfg.AgencyInbox, siteURL)
}

func NewEmailServiceWithSender(sender Sender, from, agencyInbox, siteURL string) (*EmailService, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		sender:      sender,
		from:        from,
		agencyInbox: agencyInbox,
		siteURL:     strings.TrimRight(siteURL, "/"),
		templates:   templates,
	}, nil
}

// Reference is the short code customers quote when they call the agency.
func Reference(lead *model.Lead) string {
	id := strings.ReplaceAll(lead.ID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "TN-" + strings.ToUpper(id)
}

// Subject returns what the lead is about: the item name, or the contact category
// for general messages.
func Subject(lead *model.Lead) string {
	switch {
	case lead.ItemName != "":
		return lead.ItemName
	case lead.Category != "":
		return lead.Category
	}
	return "General Inquiry"
}

func (s *EmailService) render(templateName string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", fmt.Errorf("template execution error: %v", err)
	}
	return body.String(), nil
}

func (s *EmailService) newMessage(to, subject, html string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return m
}

// NotifyAgency tells the agency inbox about a new lead. Without an inbox
// configured it does nothing.
func (s *EmailService) NotifyAgency(_ context.Context, lead *model.Lead) error {
	if s.agencyInbox == "" {
		return nil
	}

	items, err := lead.Items()
	if err != nil {
		return err
	}
	html, err := s.render("lead_notification.html", LeadNotificationData{
		Reference:   Reference(lead),
		ItemType:    string(lead.ItemType),
		ItemName:    lead.ItemName,
		ItemPrice:   lead.ItemPrice,
		Category:    Subject(lead),
		TotalAmount: lead.TotalAmount,
		Items:       items,
		LeadName:    lead.Name,
		LeadEmail:   lead.Email,
		LeadPhone:   lead.Phone,
		LeadMessage: lead.Message,
		AdminURL:    s.siteURL + "/admin/leads",
	})
	if err != nil {
		return err
	}

	m := s.newMessage(s.agencyInbox, fmt.Sprintf("New inquiry %s: %s", Reference(lead), Subject(lead)), html)
	m.SetHeader("Reply-To", lead.Email)
	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	log.Printf("Lead notification sent for %s", Reference(lead))
	return nil
}

// ConfirmCustomer acknowledges the inquiry to the customer with a QR code of the
// reference.
func (s *EmailService) ConfirmCustomer(_ context.Context, lead *model.Lead) error {
	items, err := lead.Items()
	if err != nil {
		return err
	}
	reference := Reference(lead)
	html, err := s.render("inquiry_confirmation.html", InquiryConfirmationData{
		Reference:   reference,
		Name:        lead.Name,
		ItemName:    lead.ItemName,
		Category:    Subject(lead),
		TotalAmount: lead.TotalAmount,
		Items:       items,
		SiteURL:     s.siteURL,
	})
	if err != nil {
		return err
	}

	m := s.newMessage(lead.Email, fmt.Sprintf("We received your inquiry (%s)", reference), html)

	qrBytes, err := GenerateQRCode(reference, 256)
	if err == nil {
		m.Embed("reference.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrBytes)
			return err
		}), gomail.SetHeader(map[string][]string{
			"Content-Type":        {"image/png"},
			"Content-ID":          {"<reference_qr>"},
			"Content-Disposition": {"inline"},
		}))
	} else {
		log.Printf("Could not render QR code for %s: %v", reference, err)
	}

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// SendLeadDigest mails the daily summary to the agency inbox.
func (s *EmailService) SendLeadDigest(_ context.Context, data LeadDigestData) error {
	if s.agencyInbox == "" {
		return nil
	}
	data.AdminURL = s.siteURL + "/admin/leads"
	html, err := s.render("lead_digest.html", data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Lead digest %s: %d new", data.Date.Format("2006-01-02"), len(data.NewLeads))
	if err := s.sender.DialAndSend(s.newMessage(s.agencyInbox, subject, html)); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// GenerateQRCode renders content as a PNG QR code.
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
