package core

import (
	"bytes"
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"path"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"

	appfs "github.com/trezcool/orientation/fs"
)

const (
	templatesDir = "templates/email"
	layoutName   = "layout" // wraps every e-mail; never sent on its own
)

var (
	emailTmpls    *templateSet
	emailTmplsErr error
	emailTmplOnce sync.Once
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// ContextData is what every e-mail template is executed with.
	ContextData struct {
		AppName         string
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}

	// templateSet holds the text & HTML variants of each e-mail, by name.
	// The layout templates are shared by all the e-mails.
	templateSet struct {
		text map[string]*texttmpl.Template
		html map[string]*htmltmpl.Template
	}
)

// parseTemplateSet parses every `<name>.txt` & `<name>.gohtml` of dir, inside the `layout` of the same extension.
// Templates failing to parse are skipped and reported together.
func parseTemplateSet(fsys fs.FS, dir string, strict bool) (*templateSet, error) {
	fps, err := fs.Glob(fsys, path.Join(dir, "*"))
	if err != nil {
		return nil, errors.Wrap(err, "listing email templates")
	}

	set := &templateSet{
		text: make(map[string]*texttmpl.Template),
		html: make(map[string]*htmltmpl.Template),
	}
	var failed []string
	for _, fp := range fps {
		fname := path.Base(fp)
		ext := path.Ext(fname)
		name := strings.TrimSuffix(fname, ext)
		if name == layoutName {
			continue
		}

		switch ext {
		case ".txt":
			tmpl, err := texttmpl.ParseFS(fsys, path.Join(dir, layoutName+".txt"), fp)
			if err != nil {
				failed = append(failed, err.Error())
				continue
			}
			if strict {
				tmpl = tmpl.Option("missingkey=error")
			}
			set.text[name] = tmpl
		case ".gohtml":
			tmpl, err := htmltmpl.ParseFS(fsys, path.Join(dir, layoutName+".gohtml"), fp)
			if err != nil {
				failed = append(failed, err.Error())
				continue
			}
			if strict {
				tmpl = tmpl.Option("missingkey=error")
			}
			set.html[name] = tmpl
		}
	}
	if len(failed) > 0 {
		return set, errors.Errorf("parsing email templates: %s", strings.Join(failed, "; "))
	}
	return set, nil
}

func (set *templateSet) has(name string) bool {
	_, txt := set.text[name]
	_, html := set.html[name]
	return txt || html
}

func (set *templateSet) render(name string, data ContextData) (text, html string, err error) {
	var buff bytes.Buffer
	if tmpl, ok := set.text[name]; ok {
		if err = tmpl.Execute(&buff, data); err != nil {
			return "", "", errors.Wrapf(err, "executing %s.txt", name)
		}
		text = buff.String()
	}
	if tmpl, ok := set.html[name]; ok {
		buff.Reset()
		if err = tmpl.Execute(&buff, data); err != nil {
			return "", "", errors.Wrapf(err, "executing %s.gohtml", name)
		}
		html = buff.String()
	}
	return text, html, nil
}

func loadEmailTemplates() (*templateSet, error) {
	emailTmplOnce.Do(func() {
		emailTmpls, emailTmplsErr = parseTemplateSet(appfs.FS, templatesDir, Conf.Debug || Conf.TestMode)
	})
	return emailTmpls, emailTmplsErr
}

// ParseEmailTemplates parses all email templates ahead of the first message.
func ParseEmailTemplates(logger Logger) {
	if _, err := loadEmailTemplates(); err != nil {
		logger.Error(err.Error(), err)
	}
}

// Render fills TextContent & HTMLContent from BodyStr or from the named templates.
func (m *EmailMessage) Render() error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
	}
	if m.TemplateName == "" {
		return nil
	}

	set, err := loadEmailTemplates()
	if set == nil {
		return err
	}
	if !set.has(m.TemplateName) {
		return errors.Errorf("unknown email template %q", m.TemplateName)
	}
	text, html, err := set.render(m.TemplateName, ContextData{
		AppName:         Conf.AppName,
		FrontendBaseURL: Conf.FrontendBaseURL,
		Data:            m.TemplateData,
	})
	if err != nil {
		return err
	}
	if m.BodyStr == "" {
		m.TextContent = text
	}
	m.HTMLContent = html
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
