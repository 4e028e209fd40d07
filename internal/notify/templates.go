package notify

import (
	"bytes"
	"html/template"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

type emailEvent struct {
	name    string
	subject string
	heading string
	lede    string
	closing string
}

var (
	eventConfirmation = emailEvent{
		name:    "confirmation",
		subject: "Project Confirmation - Savage Concrete",
		heading: "Project Confirmation",
		lede:    "Thank you for choosing Savage Concrete",
		closing: "Our team will arrive on the scheduled date.",
	}
	eventUpdate = emailEvent{
		name:    "update",
		subject: "Project Update - Savage Concrete",
		heading: "Project Update",
		lede:    "Your project has been updated",
		closing: "Our team will arrive on the scheduled date.",
	}
	eventReminder = emailEvent{
		name:    "reminder",
		subject: "Project Reminder - Savage Concrete",
		heading: "Project Reminder",
		lede:    "Your project is scheduled for tomorrow",
		closing: "Our team will arrive tomorrow as scheduled.",
	}
)

type emailData struct {
	Heading       string
	Lede          string
	Closing       string
	CustomerName  string
	CustomerPhone string
	Date          string
	PO            string
	Address       string
	City          string
	Subdivision   string
	LotNumber     string
	SquareFootage int
	JobCostTypes  string
	WorkTypes     string
	Notes         string
}

var emailTmpl = template.Must(template.New("project_email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #333;">{{.Heading}}</h1>
    <p style="color: #666;">{{.Lede}}</p>
  </div>

  <div style="background-color: #f7f7f7; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
    <h2 style="color: #333;">Project Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="color: #666;"><strong>Customer Name:</strong></td><td>{{.CustomerName}}</td></tr>
      <tr><td style="color: #666;"><strong>Project Date:</strong></td><td>{{.Date}}</td></tr>
      {{if .PO}}<tr><td style="color: #666;"><strong>PO Number:</strong></td><td>{{.PO}}</td></tr>{{end}}
      {{if .CustomerPhone}}<tr><td style="color: #666;"><strong>Phone:</strong></td><td>{{.CustomerPhone}}</td></tr>{{end}}
      <tr><td style="color: #666;"><strong>Address:</strong></td><td>{{.Address}}</td></tr>
      {{if .City}}<tr><td style="color: #666;"><strong>City:</strong></td><td>{{.City}}</td></tr>{{end}}
      {{if .Subdivision}}<tr><td style="color: #666;"><strong>Subdivision:</strong></td><td>{{.Subdivision}}</td></tr>{{end}}
      {{if .LotNumber}}<tr><td style="color: #666;"><strong>Lot Number:</strong></td><td>{{.LotNumber}}</td></tr>{{end}}
      {{if .SquareFootage}}<tr><td style="color: #666;"><strong>Square Footage:</strong></td><td>{{.SquareFootage}}</td></tr>{{end}}
    </table>
  </div>

  <div style="background-color: #f7f7f7; padding: 20px; border-radius: 5px; margin-bottom: 20px;">
    <h2 style="color: #333;">Work Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="color: #666;"><strong>Job Cost Type:</strong></td><td>{{.JobCostTypes}}</td></tr>
      <tr><td style="color: #666;"><strong>Work Type:</strong></td><td>{{.WorkTypes}}</td></tr>
      {{if .Notes}}<tr><td style="color: #666;"><strong>Additional Notes:</strong></td><td>{{.Notes}}</td></tr>{{end}}
    </table>
  </div>

  <div style="margin-top: 20px; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
    <h3 style="color: #333;">Important Information</h3>
    <ul style="color: #666; padding-left: 20px;">
      <li>Please ensure all necessary inspections are completed before the scheduled date</li>
      <li>Please ensure the work area is accessible on the scheduled date</li>
      <li>Remove any vehicles or obstacles from the work area</li>
      <li>{{.Closing}}</li>
    </ul>
  </div>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; text-align: center; color: #999; font-size: 12px;">
    <p>This is an automated message from Savage Concrete</p>
  </div>
</div>
`))

func renderEmail(evt emailEvent, p domain.Project, c domain.Customer) (string, error) {
	data := emailData{
		Heading:       evt.heading,
		Lede:          evt.lede,
		Closing:       evt.closing,
		CustomerName:  c.Name,
		CustomerPhone: c.Phone,
		Date:          p.Date.Format(domain.DateFormat),
		PO:            p.PO,
		Address:       p.Address,
		City:          p.City,
		Subdivision:   p.Subdivision,
		LotNumber:     p.LotNumber,
		SquareFootage: p.SquareFootage,
		JobCostTypes:  domain.DisplayTags(p.JobCostType),
		WorkTypes:     domain.DisplayTags(p.WorkType),
		Notes:         p.Notes,
	}

	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
