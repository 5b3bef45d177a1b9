package notify

import (
	"context"
	"fmt"
	"log"

	"clubmanager/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESNotifier sends member notices via Amazon SES
type SESNotifier struct {
	client     *sesv2.Client
	memberRepo *repository.MemberRepository
	fromEmail  string
	fromName   string
	enabled    bool
}

// NewSESNotifier creates a new SES notifier. An empty fromEmail yields a
// disabled notifier that logs and skips every send
func NewSESNotifier(ctx context.Context, awsRegion, fromEmail, fromName string, memberRepo *repository.MemberRepository) (*SESNotifier, error) {
	if fromEmail == "" {
		log.Println("Notifier disabled: SES_FROM_EMAIL not configured")
		return &SESNotifier{enabled: false, memberRepo: memberRepo}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Notifier enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &SESNotifier{
		client:     sesv2.NewFromConfig(cfg),
		memberRepo: memberRepo,
		fromEmail:  fromEmail,
		fromName:   fromName,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the notifier will actually send
func (n *SESNotifier) IsEnabled() bool {
	return n.enabled
}

// Notify renders the template kind for a member and sends it. Errors are
// returned for the caller to log; they carry no retry obligation.
func (n *SESNotifier) Notify(ctx context.Context, memberID int64, kind string, payload map[string]string) error {
	member, err := n.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return fmt.Errorf("failed to load member %d: %w", memberID, err)
	}
	if member == nil {
		return fmt.Errorf("member %d not found", memberID)
	}
	if member.Email == "" {
		return fmt.Errorf("member %d has no email address", memberID)
	}

	subject, body := renderTemplate(kind, member.Name, payload)

	if !n.enabled {
		log.Printf("Skipping notification (notifier disabled): kind=%s, member=%d", kind, memberID)
		return nil
	}

	return n.sendEmail(ctx, member.Email, subject, body)
}

// renderTemplate builds a plain-text notice for a template kind
func renderTemplate(kind, memberName string, payload map[string]string) (string, string) {
	switch kind {
	case KindPracticeRetired:
		subject := fmt.Sprintf("Practice %s has been discontinued", payload["practice_name"])
		body := fmt.Sprintf(`Hi %s,

The practice %s has been discontinued and your enrollment has been closed.
Any pending enrollment fees remain visible in your account statement.

If you have questions, please contact the club office.
`, memberName, payload["practice_name"])
		return subject, body

	case KindDueIssued:
		subject := fmt.Sprintf("Your club due for %s/%s", payload["month"], payload["year"])
		body := fmt.Sprintf(`Hi %s,

Your membership due for %s/%s has been issued for an amount of %s.

If you have questions, please contact the club office.
`, memberName, payload["month"], payload["year"], payload["amount"])
		return subject, body

	default:
		subject := "Club notification"
		body := fmt.Sprintf("Hi %s,\n\nYou have a new notification from the club.\n", memberName)
		return subject, body
	}
}

// sendEmail sends a plain-text email using Amazon SES
func (n *SESNotifier) sendEmail(ctx context.Context, toEmail, subject, textBody string) error {
	fromAddress := n.fromEmail
	if n.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Notification sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
