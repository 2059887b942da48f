package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"
)

const reportAttachmentName = "report.xlsx"

// Report is a status mail sent after a bulk operation. Rows, when present, are attached as
// a spreadsheet under Header.
type Report struct {
	Subject string
	Summary string
	Header  []string
	Rows    [][]string
}

type Reporter interface {
	SendReport(ctx context.Context, report Report) error
}

type sesReporter struct {
	client    sesiface.SESAPI
	emailTo   string
	emailFrom string
}

func NewSESReporter(client sesiface.SESAPI, emailTo string, emailFrom string) Reporter {
	return &sesReporter{
		client:    client,
		emailTo:   emailTo,
		emailFrom: emailFrom,
	}
}

func (r *sesReporter) SendReport(ctx context.Context, report Report) error {
	contextLogger := log.WithContext(ctx)
	contextLogger.Infof("Sending report %q", report.Subject)

	msg := gomail.NewMessage()
	msg.SetHeader("From", r.emailFrom)
	msg.SetHeader("To", populateEmailRecipients(r.emailTo)...)
	msg.SetHeader("Subject", report.Subject)
	msg.SetBody("text/plain", report.Summary)

	if len(report.Rows) > 0 {
		attachment, err := writeReportToExcel(report)
		if err != nil {
			contextLogger.WithError(err).Error("Error when writing report attachment")
			return err
		}
		msg.Attach(reportAttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	var emailRaw bytes.Buffer
	if _, err := msg.WriteTo(&emailRaw); err != nil {
		contextLogger.WithError(err).Error("Error when writing email data")
		return err
	}

	emailParams := ses.SendRawEmailInput{
		Source:     aws.String(r.emailFrom),
		RawMessage: &ses.RawMessage{Data: emailRaw.Bytes()},
	}
	emailParams.SetDestinations(aws.StringSlice(populateEmailRecipients(r.emailTo)))

	if _, err := r.client.SendRawEmailWithContext(ctx, &emailParams); err != nil {
		contextLogger.WithError(err).Error("Error when sending email")
		return fmt.Errorf("failed to send report: %w", err)
	}
	contextLogger.Infof("Finished sending report %q", report.Subject)
	return nil
}

func populateEmailRecipients(emailTo string) []string {
	var recipients []string
	for _, recipient := range strings.Split(emailTo, ",") {
		if recipient = strings.TrimSpace(recipient); recipient != "" {
			recipients = append(recipients, recipient)
		}
	}
	return recipients
}

func writeReportToExcel(report Report) ([]byte, error) {
	rows := make([][]string, 0, len(report.Rows)+1)
	if len(report.Header) > 0 {
		rows = append(rows, report.Header)
	}
	rows = append(rows, report.Rows...)

	f, err := newWorkbook(rows)
	if err != nil {
		return nil, err
	}

	red, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#FF0000", Bold: true}})
	if err != nil {
		return nil, err
	}
	offset := len(rows) - len(report.Rows) + 1
	for i, row := range report.Rows {
		// the last column holds the error, highlight rows that have one
		if len(row) == 0 || row[len(row)-1] == "" {
			continue
		}
		cell := fmt.Sprintf("A%d", i+offset)
		if err := f.SetCellStyle(exportSheet, cell, cell, red); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
