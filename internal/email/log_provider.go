package email

import (
	"strings"
	"sync"

	"jobportal_backend/internal/logger"
)

// LogProvider не отправляет письма, а пишет их в лог. Используется, когда email.enabled=false.
type LogProvider struct {
	templates TemplateRenderer
}

func NewLogProvider(templates TemplateRenderer) *LogProvider {
	return &LogProvider{templates: templates}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("email (not sent)", "to", strings.Join(email.To, ","), "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	if _, err := p.templates.Render(templateName, data); err != nil {
		return err
	}
	logger.Info("email (not sent)", "to", strings.Join(to, ","), "subject", subject, "template", templateName)
	return nil
}

func (p *LogProvider) Close() error { return nil }

// MemoryProvider запоминает отправленные письма. Для тестов.
type MemoryProvider struct {
	mu   sync.Mutex
	sent []*Email
	Err  error // если задана, возвращается из Send
}

func (p *MemoryProvider) Send(email *Email) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, email)
	return nil
}

func (p *MemoryProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	return p.Send(&Email{To: to, Subject: subject, Body: templateName})
}

func (p *MemoryProvider) Close() error { return nil }

func (p *MemoryProvider) Sent() []*Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Email, len(p.sent))
	copy(out, p.sent)
	return out
}
