package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/rs/zerolog"
)

// InviteService records invitations and emails them out. Delivery failures
// are recorded, not surfaced: the invite row stays with delivered=false so
// an admin can resend.
type InviteService struct {
	inviteRepo *repository.InvitationRepository
	cfg        *config.Config
	log        zerolog.Logger

	// sendMail is swappable for tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewInviteService creates a new InviteService.
func NewInviteService(inviteRepo *repository.InvitationRepository, cfg *config.Config, log zerolog.Logger) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		cfg:        cfg,
		log:        log.With().Str("component", "invite_service").Logger(),
		sendMail:   smtp.SendMail,
	}
}

// Send records an invitation and attempts email delivery.
func (s *InviteService) Send(ctx context.Context, adminID int, req *model.InviteRequest) (*model.Invitation, error) {
	inv := &model.Invitation{
		Email:     req.Email,
		Name:      req.Name,
		Message:   req.Message,
		InvitedBy: adminID,
	}

	id, err := s.inviteRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	inv.ID = id

	if err := s.deliver(inv); err != nil {
		s.log.Warn().Err(err).Str("email", inv.Email).Msg("invitation email delivery failed")
		return inv, nil
	}

	inv.Delivered = true
	if err := s.inviteRepo.MarkDelivered(ctx, id); err != nil {
		s.log.Error().Err(err).Int("invitation_id", id).Msg("mark delivered failed")
	}
	return inv, nil
}

func (s *InviteService) deliver(inv *model.Invitation) error {
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	greeting := "Hello"
	if inv.Name != "" {
		greeting = "Hello " + inv.Name
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", s.cfg.SMTPFrom)
	fmt.Fprintf(&body, "To: %s\r\n", inv.Email)
	fmt.Fprintf(&body, "Subject: Your career assessment invitation\r\n")
	fmt.Fprintf(&body, "MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&body, "%s,\r\n\r\n", greeting)
	fmt.Fprintf(&body, "You have been invited to take a career assessment.\r\n")
	fmt.Fprintf(&body, "Register and get started here: %s\r\n\r\n", s.cfg.SiteURL)
	if inv.Message != "" {
		fmt.Fprintf(&body, "%s\r\n\r\n", inv.Message)
	}
	fmt.Fprintf(&body, "This invitation was sent to %s.\r\n", inv.Email)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}
	return s.sendMail(addr, auth, s.cfg.SMTPFrom, []string{inv.Email}, []byte(body.String()))
}

// List retrieves sent invitations.
func (s *InviteService) List(ctx context.Context, page, perPage int) ([]model.Invitation, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	invitations, total, err := s.inviteRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	if invitations == nil {
		invitations = []model.Invitation{}
	}
	return invitations, total, nil
}
