package googledocs

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"

	"github.com/tzofim/peula/internal/domain"
)

// DocumentURL returns the edit link of a document.
func DocumentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}

// tableColumns are the columns of the component table, in order.
var tableColumns = []string{"Component", "#", "Content", "Time", "Materials"}

// ExportConfig selects the template document and destination folder.
type ExportConfig struct {
	TemplateID string
	FolderID   string
}

// Exporter writes peulot into new Google Docs documents.
type Exporter struct {
	svc *Services
	cfg ExportConfig
	now func() time.Time
}

// NewExporter returns an exporter. A nil svc yields an exporter whose every
// call fails with "document service not configured".
func NewExporter(svc *Services, cfg ExportConfig) *Exporter {
	return &Exporter{svc: svc, cfg: cfg, now: time.Now}
}

// Export creates a document for p, fills it and shares it read-only with
// anyone holding the link. It returns the document URL.
func (e *Exporter) Export(ctx context.Context, p *domain.Peula) (string, error) {
	if e == nil || e.svc == nil {
		return "", notConfigured()
	}

	docID, fromTemplate, err := e.createDocument(ctx, p.Title)
	if err != nil {
		return "", err
	}

	if err := e.batchUpdate(ctx, docID, placeholderRequests(p, e.now())); err != nil {
		return "", err
	}

	table, err := e.componentTable(ctx, docID)
	if err != nil {
		return "", err
	}

	rows := componentRows(p)
	startRow := 1
	if !fromTemplate {
		rows = append([][]string{tableColumns}, rows...)
		startRow = 0
	}
	if err := e.batchUpdate(ctx, docID, planCellInserts(table.Table, startRow, rows)); err != nil {
		return "", err
	}

	if _, err := e.svc.Drive.Permissions.
		Create(docID, &drive.Permission{Type: "anyone", Role: "reader"}).
		SupportsAllDrives(true).
		Context(ctx).
		Do(); err != nil {
		return "", externalError("sharing document", err)
	}
	return DocumentURL(docID), nil
}

// createDocument copies the template or, without one, creates a document
// with the same header and table layout a template would carry.
func (e *Exporter) createDocument(ctx context.Context, title string) (string, bool, error) {
	if e.cfg.TemplateID != "" {
		file := &drive.File{Name: title}
		if e.cfg.FolderID != "" {
			file.Parents = []string{e.cfg.FolderID}
		}
		copied, err := e.svc.Drive.Files.
			Copy(e.cfg.TemplateID, file).
			SupportsAllDrives(true).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			if isNotFound(err) {
				return "", false, &domain.ExternalServiceError{Service: serviceName, Message: "template not found", Err: err}
			}
			return "", false, externalError("copying template", err)
		}
		return copied.Id, true, nil
	}

	doc, err := e.svc.Docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", false, externalError("creating document", err)
	}
	layout := []*docs.Request{
		{InsertText: &docs.InsertTextRequest{Location: &docs.Location{Index: 1}, Text: blankHeader}},
		{InsertTable: &docs.InsertTableRequest{
			Rows:                 int64(domain.SectionCount + 1),
			Columns:              int64(len(tableColumns)),
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
		}},
	}
	if err := e.batchUpdate(ctx, doc.DocumentId, layout); err != nil {
		return "", false, err
	}
	return doc.DocumentId, false, nil
}

const blankHeader = "{{TITLE}}\n" +
	"Topic: {{TOPIC}}\n" +
	"Age group: {{AGE_GROUP}}\n" +
	"Duration: {{DURATION}}\n" +
	"Group size: {{GROUP_SIZE}}\n" +
	"Goals: {{GOALS}}\n" +
	"Materials: {{MATERIALS}}\n" +
	"Special considerations: {{CONSIDERATIONS}}\n" +
	"Date: {{DATE}}\n"

// componentTable returns the first table, growing it to one row per
// component below the header row.
func (e *Exporter) componentTable(ctx context.Context, docID string) (*docs.StructuralElement, error) {
	table, err := e.firstTable(ctx, docID)
	if err != nil {
		return nil, err
	}
	want := domain.SectionCount + 1
	have := len(table.Table.TableRows)
	if have >= want {
		return table, nil
	}

	reqs := make([]*docs.Request, 0, want-have)
	for i := have; i < want; i++ {
		reqs = append(reqs, &docs.Request{InsertTableRow: &docs.InsertTableRowRequest{
			TableCellLocation: &docs.TableCellLocation{
				TableStartLocation: &docs.Location{Index: table.StartIndex},
				RowIndex:           int64(have - 1),
			},
			InsertBelow: true,
		}})
	}
	if err := e.batchUpdate(ctx, docID, reqs); err != nil {
		return nil, err
	}
	return e.firstTable(ctx, docID)
}

func (e *Exporter) firstTable(ctx context.Context, docID string) (*docs.StructuralElement, error) {
	doc, err := e.svc.Docs.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return nil, externalError("reading document", err)
	}
	if doc.Body != nil {
		for _, el := range doc.Body.Content {
			if el.Table != nil && len(el.Table.TableRows) > 0 {
				return el, nil
			}
		}
	}
	return nil, &domain.ExternalServiceError{Service: serviceName, Message: "template has no table"}
}

func (e *Exporter) batchUpdate(ctx context.Context, docID string, reqs []*docs.Request) error {
	if len(reqs) == 0 {
		return nil
	}
	_, err := e.svc.Docs.Documents.
		BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{Requests: reqs}).
		Context(ctx).
		Do()
	if err != nil {
		return externalError("updating document", err)
	}
	return nil
}

// placeholderRequests substitutes every header placeholder.
func placeholderRequests(p *domain.Peula, now time.Time) []*docs.Request {
	values := []struct{ key, value string }{
		{"{{TITLE}}", p.Title},
		{"{{TOPIC}}", p.Topic},
		{"{{AGE_GROUP}}", p.AgeGroup},
		{"{{DURATION}}", p.Duration},
		{"{{GROUP_SIZE}}", p.GroupSize},
		{"{{GOALS}}", p.Goals},
		{"{{MATERIALS}}", strings.Join(p.AvailableMaterials, ", ")},
		{"{{CONSIDERATIONS}}", domain.StringValue(p.SpecialConsiderations)},
		{"{{DATE}}", now.Format("2006-01-02")},
	}
	reqs := make([]*docs.Request, 0, len(values))
	for _, v := range values {
		reqs = append(reqs, &docs.Request{ReplaceAllText: &docs.ReplaceAllTextRequest{
			ContainsText: &docs.SubstringMatchCriteria{Text: v.key, MatchCase: true},
			ReplaceText:  v.value,
		}})
	}
	return reqs
}

// componentRows renders one table row per component.
func componentRows(p *domain.Peula) [][]string {
	materials := strings.Join(p.AvailableMaterials, ", ")
	rows := make([][]string, 0, len(p.Content.Components))
	for i, c := range p.Content.Components {
		body := strings.TrimSpace(c.Description)
		if bp := strings.TrimSpace(c.BestPractices); bp != "" {
			body += "\n\n" + bp
		}
		rows = append(rows, []string{
			domain.CoalesceStr(c.Component, domain.SectionLabel(i)),
			strconv.Itoa(i + 1),
			body,
			c.TimeStructure,
			materials,
		})
	}
	return rows
}

type cellInsert struct {
	index int64
	text  string
}

// planCellInserts writes rows into table starting at startRow. Inserts are
// issued from the highest index down so earlier inserts do not shift the
// positions of later ones.
func planCellInserts(table *docs.Table, startRow int, rows [][]string) []*docs.Request {
	var inserts []cellInsert
	for r, row := range rows {
		ri := startRow + r
		if table == nil || ri >= len(table.TableRows) {
			break
		}
		cells := table.TableRows[ri].TableCells
		for c, text := range row {
			if text == "" || c >= len(cells) || len(cells[c].Content) == 0 {
				continue
			}
			inserts = append(inserts, cellInsert{index: cells[c].Content[0].StartIndex, text: text})
		}
	}

	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].index > inserts[j].index })

	reqs := make([]*docs.Request, 0, len(inserts))
	for _, in := range inserts {
		reqs = append(reqs, &docs.Request{InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: in.index},
			Text:     in.text,
		}})
	}
	return reqs
}

// String describes the export target for logs.
func (c ExportConfig) String() string {
	if c.TemplateID == "" {
		return "blank document"
	}
	return fmt.Sprintf("template %s", c.TemplateID)
}
