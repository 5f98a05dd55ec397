package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/webrecon/domainscan/internal/model"
)

// maxCompactLinks caps the link list in non-verbose output. Verbose
// output always lists every link.
const maxCompactLinks = 20

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables additional detail in the output, such as the
	// untruncated link list.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *TextWriter) Write(report *model.DomainReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writePage(&sb, report)
	w.writeRegistration(&sb, report)
	w.writeDNS(&sb, report)
	w.writeReverse(&sb, report)
	w.writeGeo(&sb, report)
	w.writeWayback(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// RenderLines returns the report as a slice of text lines.
// The PDF writer reuses this rendering so the two formats never drift.
func (w *TextWriter) RenderLines(report *model.DomainReport) []string {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writePage(&sb, report)
	w.writeRegistration(&sb, report)
	w.writeDNS(&sb, report)
	w.writeReverse(&sb, report)
	w.writeGeo(&sb, report)
	w.writeWayback(&sb, report)
	w.writeFooter(&sb, report)

	return strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
}

// writeHeader writes the report header with scan information.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.DomainReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      DOMAIN RECON REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:    %s\n", report.Target.URL))
	sb.WriteString(fmt.Sprintf("Host:      %s\n", report.Target.Host))
	sb.WriteString(fmt.Sprintf("Scan Date: %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))

	switch {
	case report.TimedOut:
		sb.WriteString("Status:    TIMED OUT (partial results)\n")
	case len(report.Degraded) > 0:
		sb.WriteString(fmt.Sprintf("Status:    Complete (%d lookup(s) degraded)\n", len(report.Degraded)))
	default:
		sb.WriteString("Status:    Complete\n")
	}

	for _, note := range report.Degraded {
		sb.WriteString(fmt.Sprintf("  - %s\n", note))
	}

	sb.WriteString("\n")
}

// sectionHeader writes a section divider with a title.
func sectionHeader(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writePage writes the fetched page section.
func (w *TextWriter) writePage(sb *strings.Builder, report *model.DomainReport) {
	sectionHeader(sb, "PAGE")

	page := report.Page
	if page == nil {
		sb.WriteString("  " + notAvailable + "\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  Status Code:  %d\n", page.StatusCode))
	if page.ContentType != "" {
		sb.WriteString(fmt.Sprintf("  Content Type: %s\n", page.ContentType))
	}
	if page.Title != "" {
		sb.WriteString(fmt.Sprintf("  Title:        %s\n", page.Title))
	}
	if page.Hash != "" {
		sb.WriteString(fmt.Sprintf("  Body SHA-256: %s\n", page.Hash))
	}

	sb.WriteString(fmt.Sprintf("  Links:        %d\n", len(page.Links)))
	links := page.Links
	if !w.verbose && len(links) > maxCompactLinks {
		links = links[:maxCompactLinks]
	}
	for _, link := range links {
		sb.WriteString(fmt.Sprintf("    * %s\n", link))
	}
	if omitted := len(page.Links) - len(links); omitted > 0 {
		sb.WriteString(fmt.Sprintf("    ... and %d more\n", omitted))
	}

	if excerpt := page.TextExcerpt(); excerpt != "" {
		sb.WriteString("\n  Text:\n")
		sb.WriteString(indentWrapped(excerpt, "    ", 66))
	}

	sb.WriteString("\n")
}

// writeRegistration writes the WHOIS registration section.
func (w *TextWriter) writeRegistration(sb *strings.Builder, report *model.DomainReport) {
	sectionHeader(sb, "REGISTRATION (WHOIS)")

	reg := report.Registration
	if reg.Empty() {
		sb.WriteString("  " + notAvailable + "\n\n")
		return
	}

	if !reg.Parsed {
		sb.WriteString("  (unparsed registry response)\n\n")
		sb.WriteString(indentWrapped(reg.Raw, "  ", 68))
		sb.WriteString("\n")
		return
	}

	writeField := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", label+":", value))
		}
	}

	writeField("Registrar", reg.Registrar)
	writeField("WHOIS Server", reg.WhoisServer)
	writeField("Created", reg.CreatedDate)
	writeField("Updated", reg.UpdatedDate)
	writeField("Expires", reg.ExpirationDate)
	writeField("Registrant", reg.RegistrantName)
	writeField("Organization", reg.RegistrantOrg)
	writeField("Country", reg.RegistrantCountry)

	if len(reg.Statuses) > 0 {
		sb.WriteString("  Status:\n")
		for _, s := range reg.Statuses {
			sb.WriteString(fmt.Sprintf("    * %s\n", s))
		}
	}
	if len(reg.NameServers) > 0 {
		sb.WriteString("  Name Servers:\n")
		for _, ns := range reg.NameServers {
			sb.WriteString(fmt.Sprintf("    * %s\n", ns))
		}
	}
	if reg.DNSSec {
		sb.WriteString("  DNSSEC:          signed\n")
	}

	sb.WriteString("\n")
}

// writeDNS writes the A and MX record section.
func (w *TextWriter) writeDNS(sb *strings.Builder, report *model.DomainReport) {
	sectionHeader(sb, "DNS")

	dns := report.DNS
	if dns == nil || (len(dns.Addresses) == 0 && len(dns.MX) == 0) {
		sb.WriteString("  " + notAvailable + "\n\n")
		return
	}

	if len(dns.Addresses) > 0 {
		sb.WriteString("  A Records:\n")
		for _, addr := range dns.Addresses {
			sb.WriteString(fmt.Sprintf("    * %s\n", addr))
		}
	} else {
		sb.WriteString("  A Records:    none\n")
	}

	if len(dns.MX) > 0 {
		sb.WriteString("  MX Records:\n")
		for _, mx := range dns.MX {
			sb.WriteString(fmt.Sprintf("    * %-4d %s\n", mx.Preference, mx.Host))
		}
	} else {
		sb.WriteString("  MX Records:   none\n")
	}

	sb.WriteString("\n")
}

// writeReverse writes the reverse DNS section.
func (w *TextWriter) writeReverse(sb *strings.Builder, report *model.DomainReport) {
	sectionHeader(sb, "REVERSE DNS")

	rev := report.Reverse
	if rev == nil {
		sb.WriteString("  " + notAvailable + "\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  IP: %s\n", rev.IP))
	if len(rev.Hostnames) == 0 {
		sb.WriteString("  Hostnames: none\n")
	} else {
		sb.WriteString("  Hostnames:\n")
		for _, name := range rev.Hostnames {
			sb.WriteString(fmt.Sprintf("    * %s\n", name))
		}
	}

	sb.WriteString("\n")
}

// writeGeo writes the geolocation section.
func (w *TextWriter) writeGeo(sb *strings.Builder, report *model.DomainReport) {
	sectionHeader(sb, "GEOLOCATION")

	geo := report.Geo
	if geo.Empty() {
		sb.WriteString("  " + notAvailable + "\n\n")
		return
	}

	writeField := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("  %-10s %s\n", label+":", value))
		}
	}

	writeField("IP", geo.IP)
	if geo.CountryCode != "" {
		writeField("Country", fmt.Sprintf("%s (%s)", geo.Country, geo.CountryCode))
	} else {
		writeField("Country", geo.Country)
	}
	writeField("Region", geo.Region)
	writeField("City", geo.City)
	writeField("ISP", geo.ISP)
	writeField("Org", geo.Org)
	writeField("AS", geo.AS)
	writeField("Timezone", geo.Timezone)
	if geo.Lat != 0 || geo.Lon != 0 {
		writeField("Coords", fmt.Sprintf("%.4f, %.4f", geo.Lat, geo.Lon))
	}

	sb.WriteString("\n")
}

// writeWayback writes the archived snapshot section.
func (w *TextWriter) writeWayback(sb *strings.Builder, report *model.DomainReport) {
	sectionHeader(sb, "WAYBACK MACHINE")

	snap := report.Wayback
	if snap == nil {
		sb.WriteString("  no archived snapshot\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  Snapshot:  %s\n", snap.URL))
	sb.WriteString(fmt.Sprintf("  Timestamp: %s\n", snap.Timestamp))
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder, _ *model.DomainReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by domainscan\n")
	sb.WriteString("https://github.com/webrecon/domainscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// indentWrapped writes text wrapped at width characters, each line
// prefixed with indent.
func indentWrapped(text, indent string, width int) string {
	var sb strings.Builder

	line := indent
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString(line)
			sb.WriteString("\n")
			line = indent
			lineLen = 0
		}
		if lineLen > 0 {
			line += " "
			lineLen++
		}
		line += word
		lineLen += len(word)
	}
	if lineLen > 0 {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
