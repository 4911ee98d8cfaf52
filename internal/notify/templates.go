package notify

import (
	"bytes"
	"html/template"
	"time"
)

var (
	birthdayTpl = template.Must(template.New("birthday").Parse(`<p>¡Feliz cumpleaños, {{.Name}}!</p>
<p>Todo el equipo te desea un gran día. Te esperamos pronto.</p>`))

	assignedTpl = template.Must(template.New("assigned").Parse(`<p>Hola {{.ClientName}},</p>
<p>Tu turno de <strong>{{.ServiceName}}</strong> quedó agendado para el {{.Date}}.</p>
<p>Si necesitás reprogramarlo, respondé este correo.</p>`))

	reminderTpl = template.Must(template.New("reminder").Parse(`<p>Hola {{.ClientName}},</p>
<p>Te recordamos tu turno de <strong>{{.ServiceName}}</strong> mañana {{.Date}}.</p>`))
)

type shiftMail struct {
	ClientName  string
	ServiceName string
	Date        string
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func BirthdayMessage(to, name string) (Message, error) {
	body, err := render(birthdayTpl, struct{ Name string }{name})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "¡Feliz cumpleaños!", HTML: body}, nil
}

func ShiftAssignedMessage(to, clientName, serviceName string, at time.Time) (Message, error) {
	body, err := render(assignedTpl, shiftMail{
		ClientName:  clientName,
		ServiceName: serviceName,
		Date:        at.Format("02/01/2006 15:04"),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Turno asignado", HTML: body}, nil
}

func ReminderMessage(to, clientName, serviceName string, at time.Time) (Message, error) {
	body, err := render(reminderTpl, shiftMail{
		ClientName:  clientName,
		ServiceName: serviceName,
		Date:        at.Format("15:04"),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Recordatorio de turno", HTML: body}, nil
}
