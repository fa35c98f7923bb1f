package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

// SendMessage persiste el mensaje y lo publica. Un fallo al publicar solo se registra: el mensaje
// ya está guardado y las bandejas lo leen del almacén.
func (uc *AdminUseCase) SendMessage(ctx context.Context, in dto.SendMessageRequest, sentBy *string) (*dto.AdminMessageResponse, error) {
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Message) == "" || len(in.Roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	targets := in.TargetUsers
	if targets == nil {
		targets = []string{}
	}
	now := uc.now()
	msg := &entity.AdminMessage{
		ID:          uuid.New().String(),
		Subject:     in.Subject,
		Message:     in.Message,
		Roles:       in.Roles,
		TargetUsers: targets,
		SentAt:      now,
		SentBy:      sentBy,
		CreatedAt:   now,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := uc.publisher.PublishMessage(ctx, msg); err != nil {
		uc.log.Warn().Err(err).Str("message_id", msg.ID).Msg("no se pudo publicar el mensaje")
	}
	out := toMessageResponse(msg)
	return &out, nil
}

// Messages bandeja filtrada por rol y destinatario, más reciente primero.
func (uc *AdminUseCase) Messages(ctx context.Context, role, userID string) (*dto.MessagesResponse, error) {
	msgs, err := uc.messageRepo.List(ctx, strings.TrimSpace(role), strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageSummary, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.MessageSummary{ID: m.ID, Subject: m.Subject, SentAt: m.SentAt, Content: m.Message})
	}
	return &dto.MessagesResponse{Messages: out}, nil
}

func toMessageResponse(m *entity.AdminMessage) dto.AdminMessageResponse {
	return dto.AdminMessageResponse{
		ID:          m.ID,
		Subject:     m.Subject,
		Message:     m.Message,
		Roles:       m.Roles,
		TargetUsers: m.TargetUsers,
		SentAt:      m.SentAt,
		SentBy:      m.SentBy,
		CreatedAt:   m.CreatedAt,
	}
}
