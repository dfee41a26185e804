package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const TemplateInterviewInvitation = "interview_invitation"

const interviewInvitationHTML = `<p>Hello{{if .InterviewerName}} {{.InterviewerName}}{{end}},</p>
<p>You have been added as an interviewer for <b>{{.CandidateName}}</b>{{if .JobTitle}} ({{.JobTitle}}){{end}}.</p>
<ul>
  <li>Date: {{.Date}}</li>
  <li>Time: {{.StartTime}} - {{.EndTime}}</li>
  <li>Type: {{.Type}}</li>
  {{if .Location}}<li>Location: {{.Location}}</li>{{end}}
</ul>
{{if .Notes}}<p>{{.Notes}}</p>{{end}}`

// TemplateManager хранит html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	if err := tm.AddTemplate(TemplateInterviewInvitation, interviewInvitationHTML); err != nil {
		panic(err)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
