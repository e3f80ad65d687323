package storescu

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/caio-sobreiro/dicomsend/types"
)

// Summary counts entries by outcome. Sent entries are split by the class of
// their status; locally synthesized statuses count as pending.
type Summary struct {
	Total   int `yaml:"total"`
	Sent    int `yaml:"sent"`
	NotSent int `yaml:"not_sent"`

	Success int `yaml:"success"`
	Warning int `yaml:"warning"`
	Failed  int `yaml:"failed"`
	Refused int `yaml:"refused"`
	Pending int `yaml:"pending"`
	Unknown int `yaml:"unknown"`
}

// Summarize counts the entries of list
func Summarize(list *TransferList) Summary {
	var s Summary
	for _, entry := range list.entries {
		s.add(entry)
	}
	return s
}

func (s *Summary) add(entry *TransferEntry) {
	s.Total++
	if !entry.Sent {
		s.NotSent++
		return
	}
	s.Sent++
	switch types.ClassifyStatus(entry.Status) {
	case types.StatusClassSuccess:
		s.Success++
	case types.StatusClassWarning:
		s.Warning++
	case types.StatusClassError:
		s.Failed++
	case types.StatusClassRefused:
		s.Refused++
	case types.StatusClassPending:
		s.Pending++
	default:
		s.Unknown++
	}
}

// Successful reports whether every entry was stored with success or warning
func (s Summary) Successful() bool {
	return s.NotSent == 0 && s.Success+s.Warning == s.Total
}

func (s Summary) String() string {
	return fmt.Sprintf("%d objects: %d sent (%d success, %d warning, %d failed, %d refused, %d not attempted, %d unknown), %d not sent",
		s.Total, s.Sent, s.Success, s.Warning, s.Failed, s.Refused, s.Pending, s.Unknown, s.NotSent)
}

// ReportRecord is the outcome of one entry
type ReportRecord struct {
	Seq                       int    `yaml:"seq"`
	Source                    string `yaml:"source"`
	SOPInstanceUID            string `yaml:"sop_instance_uid"`
	SOPClassUID               string `yaml:"sop_class_uid"`
	SOPClassName              string `yaml:"sop_class_name"`
	TransferSyntaxUID         string `yaml:"transfer_syntax_uid"`
	TransferSyntaxName        string `yaml:"transfer_syntax_name"`
	Session                   int    `yaml:"session,omitempty"`
	ContextID                 int    `yaml:"context_id,omitempty"`
	NetworkTransferSyntaxUID  string `yaml:"network_transfer_syntax_uid,omitempty"`
	NetworkTransferSyntaxName string `yaml:"network_transfer_syntax_name,omitempty"`
	Size                      int64  `yaml:"size,omitempty"`
	Sent                      bool   `yaml:"sent"`
	Status                    uint16 `yaml:"status"`
	StatusText                string `yaml:"status_text"`
}

// Report is the detailed outcome of a transfer job
type Report struct {
	Peer      string         `yaml:"peer"`
	CreatedAt time.Time      `yaml:"created_at"`
	Summary   Summary        `yaml:"summary"`
	Records   []ReportRecord `yaml:"records"`
}

// NewReport builds a report over list. A nil registry uses the built-in
// dictionary for names.
func NewReport(list *TransferList, peer string, registry *types.Registry) *Report {
	if registry == nil {
		registry = types.DefaultRegistry()
	}

	r := &Report{
		Peer:      peer,
		CreatedAt: time.Now().UTC(),
		Summary:   Summarize(list),
		Records:   make([]ReportRecord, 0, len(list.entries)),
	}
	for i, entry := range list.entries {
		record := ReportRecord{
			Seq:                i + 1,
			Source:             entry.Source.Name(),
			SOPInstanceUID:     entry.SOPInstanceUID,
			SOPClassUID:        entry.SOPClassUID,
			SOPClassName:       registry.SOPClassName(entry.SOPClassUID),
			TransferSyntaxUID:  entry.TransferSyntaxUID,
			TransferSyntaxName: registry.TransferSyntaxName(entry.TransferSyntaxUID),
			Session:            entry.Session,
			ContextID:          int(entry.ChannelID),
			Size:               entry.Size,
			Sent:               entry.Sent,
			Status:             entry.Status,
			StatusText:         "Not sent",
		}
		if entry.NetworkTransferSyntax != "" {
			record.NetworkTransferSyntaxUID = entry.NetworkTransferSyntax
			record.NetworkTransferSyntaxName = registry.TransferSyntaxName(entry.NetworkTransferSyntax)
		}
		if entry.Sent {
			record.StatusText = types.StatusString(entry.Status)
		}
		r.Records = append(r.Records, record)
	}
	return r
}

// WriteText renders the report as an aligned table followed by the summary
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Storage report for %s (%s)\n\n", r.Peer, r.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSOURCE\tSOP INSTANCE\tSOP CLASS\tTRANSFER SYNTAX\tSESSION\tPC\tSENT AS\tSIZE\tSTATUS")
	for _, rec := range r.Records {
		session, pc, size, sentAs := "-", "-", "-", "-"
		if rec.Session > 0 {
			session = fmt.Sprint(rec.Session)
		}
		if rec.ContextID > 0 {
			pc = fmt.Sprint(rec.ContextID)
		}
		if rec.Size > 0 {
			size = humanize.Bytes(uint64(rec.Size))
		}
		if rec.NetworkTransferSyntaxName != "" {
			sentAs = rec.NetworkTransferSyntaxName
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Seq, rec.Source, rec.SOPInstanceUID, rec.SOPClassName, rec.TransferSyntaxName,
			session, pc, sentAs, size, rec.StatusText)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", r.Summary)
	return err
}

// WriteYAML renders the report as YAML
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML parses a report written by WriteYAML
func ReadYAML(r io.Reader) (*Report, error) {
	var report Report
	if err := yaml.NewDecoder(r).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
