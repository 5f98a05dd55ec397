package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/webrecon/domainscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.DomainReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePage(md, report)
	w.writeRegistration(md, report)
	w.writeDNS(md, report)
	w.writeReverse(md, report)
	w.writeGeo(md, report)
	w.writeWayback(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.DomainReport) {
	md.H1("Domain Recon Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target.URL + "`"},
			{"Host", "`" + report.Target.Host + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")

	if len(report.Degraded) > 0 {
		md.Warningf("%d lookup(s) failed; their sections show placeholders.", len(report.Degraded))
		md.PlainText("")
		md.BulletList(report.Degraded...)
		md.PlainText("")
	}
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.DomainReport) string {
	if report.TimedOut {
		return "Timed Out (partial results)"
	}
	if len(report.Degraded) > 0 {
		return "Complete (degraded)"
	}
	return "Complete"
}

// writePage writes the fetched page section.
func (w *MarkdownWriter) writePage(md *markdown.Markdown, report *model.DomainReport) {
	md.H2("Page")
	md.PlainText("")

	page := report.Page
	if page == nil {
		md.PlainText(notAvailable)
		md.PlainText("")
		return
	}

	rows := [][]string{
		{"Status Code", strconv.Itoa(page.StatusCode)},
		{"Content Type", page.ContentType},
		{"Title", page.Title},
		{"Links", strconv.Itoa(len(page.Links))},
	}
	if page.Hash != "" {
		rows = append(rows, []string{"Body SHA-256", "`" + page.Hash + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(page.Links) > 0 {
		md.H3("Links")
		md.PlainText("")
		md.BulletList(page.Links...)
		md.PlainText("")
	}

	if excerpt := page.TextExcerpt(); excerpt != "" {
		md.H3("Text")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, excerpt)
		md.PlainText("")
	}
}

// writeRegistration writes the WHOIS registration section.
func (w *MarkdownWriter) writeRegistration(md *markdown.Markdown, report *model.DomainReport) {
	md.H2("Registration (WHOIS)")
	md.PlainText("")

	reg := report.Registration
	if reg.Empty() {
		md.PlainText(notAvailable)
		md.PlainText("")
		return
	}

	if !reg.Parsed {
		md.PlainText("Unparsed registry response:")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, reg.Raw)
		md.PlainText("")
		return
	}

	rows := [][]string{}
	addRow := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, value})
		}
	}
	addRow("Registrar", reg.Registrar)
	addRow("WHOIS Server", reg.WhoisServer)
	addRow("Created", reg.CreatedDate)
	addRow("Updated", reg.UpdatedDate)
	addRow("Expires", reg.ExpirationDate)
	addRow("Registrant", reg.RegistrantName)
	addRow("Organization", reg.RegistrantOrg)
	addRow("Country", reg.RegistrantCountry)
	if reg.DNSSec {
		addRow("DNSSEC", "signed")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(reg.Statuses) > 0 {
		md.H3("Status")
		md.PlainText("")
		md.BulletList(reg.Statuses...)
		md.PlainText("")
	}
	if len(reg.NameServers) > 0 {
		md.H3("Name Servers")
		md.PlainText("")
		md.BulletList(reg.NameServers...)
		md.PlainText("")
	}
}

// writeDNS writes the A and MX record section.
func (w *MarkdownWriter) writeDNS(md *markdown.Markdown, report *model.DomainReport) {
	md.H2("DNS")
	md.PlainText("")

	dns := report.DNS
	if dns == nil || (len(dns.Addresses) == 0 && len(dns.MX) == 0) {
		md.PlainText(notAvailable)
		md.PlainText("")
		return
	}

	md.H3("A Records")
	md.PlainText("")
	if len(dns.Addresses) == 0 {
		md.PlainText("none")
	} else {
		md.BulletList(dns.Addresses...)
	}
	md.PlainText("")

	md.H3("MX Records")
	md.PlainText("")
	if len(dns.MX) == 0 {
		md.PlainText("none")
	} else {
		rows := make([][]string, len(dns.MX))
		for i, mx := range dns.MX {
			rows[i] = []string{strconv.Itoa(int(mx.Preference)), mx.Host}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Preference", "Host"},
			Rows:   rows,
		})
	}
	md.PlainText("")
}

// writeReverse writes the reverse DNS section.
func (w *MarkdownWriter) writeReverse(md *markdown.Markdown, report *model.DomainReport) {
	md.H2("Reverse DNS")
	md.PlainText("")

	rev := report.Reverse
	if rev == nil {
		md.PlainText(notAvailable)
		md.PlainText("")
		return
	}

	md.PlainTextf("IP: `%s`", rev.IP)
	md.PlainText("")
	if len(rev.Hostnames) == 0 {
		md.PlainText("No PTR record.")
	} else {
		md.BulletList(rev.Hostnames...)
	}
	md.PlainText("")
}

// writeGeo writes the geolocation section.
func (w *MarkdownWriter) writeGeo(md *markdown.Markdown, report *model.DomainReport) {
	md.H2("Geolocation")
	md.PlainText("")

	geo := report.Geo
	if geo.Empty() {
		md.PlainText(notAvailable)
		md.PlainText("")
		return
	}

	rows := [][]string{}
	addRow := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, value})
		}
	}
	addRow("IP", geo.IP)
	addRow("Country", geo.Country)
	addRow("Country Code", geo.CountryCode)
	addRow("Region", geo.Region)
	addRow("City", geo.City)
	addRow("ISP", geo.ISP)
	addRow("Org", geo.Org)
	addRow("AS", geo.AS)
	addRow("Timezone", geo.Timezone)
	if geo.Lat != 0 || geo.Lon != 0 {
		addRow("Coordinates", fmt.Sprintf("%.4f, %.4f", geo.Lat, geo.Lon))
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWayback writes the archived snapshot section.
func (w *MarkdownWriter) writeWayback(md *markdown.Markdown, report *model.DomainReport) {
	md.H2("Wayback Machine")
	md.PlainText("")

	snap := report.Wayback
	if snap == nil {
		md.PlainText("No archived snapshot.")
		md.PlainText("")
		return
	}

	md.PlainTextf("Closest snapshot: [%s](%s)", snap.Timestamp, snap.URL)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [domainscan](https://github.com/webrecon/domainscan)*")
}
