package email

import (
	"context"
	"strings"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо; html-тело имеет приоритет над текстовым
	Send(ctx context.Context, email *Email) error

	// SendTemplate рендерит шаблон и отправляет его как html
	SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// NoopProvider только пишет в лог; используется, когда email выключен
type NoopProvider struct{}

func (NoopProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxDebug(ctx, "Email delivery disabled, message dropped",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p NoopProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	return p.Send(ctx, &Email{To: to, Subject: subject})
}

func (NoopProvider) Validate() error {
	return nil
}
