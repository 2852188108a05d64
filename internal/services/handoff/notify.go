// internal/services/handoff/notify.go
package handoff

import (
	"context"
	"fmt"
	"strings"

	"lead-assistant/internal/common/aws"
	"lead-assistant/internal/common/zoho"
	"lead-assistant/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type CRMService interface {
	CreateLead(ctx context.Context, lead *zoho.Lead) (string, error)
}

const anonymousLastName = "Web Lead"

func (h *Handler) sendEmail(ctx context.Context, handoffID string, lead *models.LeadData) error {
	subject := fmt.Sprintf("New lead ready for handoff (%s)", handoffID)
	body := "A lead is ready for follow-up.\n\n" + Summary(lead)
	_, err := h.sesClient.SendEmail(ctx, aws.NewTextEmail(h.config.FromEmail, h.config.AgentEmail, subject, body))
	return err
}

func (h *Handler) sendSMS(ctx context.Context, lead *models.LeadData) error {
	message := fmt.Sprintf("New lead: %s in %s, budget %s",
		deref(lead.PropertyType), strings.Join(lead.Locations, "/"), FormatBudget(lead.Budget))
	_, err := h.snsClient.Publish(ctx, aws.NewSMS(h.config.AgentPhone, message, h.config.SMSSenderID))
	return err
}

// toCRMLead maps a lead record onto the CRM Leads module. The budget figure
// is the upper bound of a range.
func toCRMLead(lead *models.LeadData, source string) *zoho.Lead {
	crmLead := &zoho.Lead{
		LastName:    anonymousLastName,
		Source:      source,
		Description: Summary(lead),
	}
	if len(lead.Locations) > 0 {
		crmLead.City = lead.Locations[0]
	}
	if lead.Budget != nil {
		switch {
		case lead.Budget.MaxValue != nil:
			v := *lead.Budget.MaxValue
			crmLead.Budget = &v
		case lead.Budget.SingleValue != nil:
			v := *lead.Budget.SingleValue
			crmLead.Budget = &v
		}
	}
	if lead.PropertyType != nil {
		crmLead.Tags = []zoho.Tag{{Name: *lead.PropertyType}}
	}
	return crmLead
}
