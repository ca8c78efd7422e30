package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/config"
	"github.com/jask/qualityrs/internal/dashboard"
	"github.com/jask/qualityrs/internal/filter"
	"github.com/jask/qualityrs/internal/report"
	"github.com/jask/qualityrs/internal/service"
)

const (
	chartHeight  = 8
	historyLimit = 20
	hbarRows     = 8
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	gate     auth.Gate
	services Services
	session  *dashboard.Session
	keys     *KeyRegistry
	preload  *Preload

	state  appState
	modal  modalState
	status string
	width  int
	height int

	password textinput.Model
	path     textinput.Model

	snap     dashboard.Snapshot
	chart    timeChart
	chartTop int
	importID string // activity-log id of the loaded file, if it was imported

	initCmd tea.Cmd

	filterCursor int
	check        checklist
	rows         table.Model
	history      service.History
}

// Services are the application services the views call into.
type Services struct {
	Ingest      *service.IngestService
	Export      *service.ExportService
	History     *service.HistoryService
	Maintenance *service.MaintenanceService
}

// Preload is a dataset admitted right after login, used by the demo mode
// and by a file passed on the command line.
type Preload struct {
	Dataset complaint.Dataset
	Source  string
	Path    string
}

type appState string

const (
	viewLogin     appState = "login"
	viewImport    appState = "import"
	viewDashboard appState = "dashboard"
	viewFilters   appState = "filters"
	viewTable     appState = "table"
	viewHistory   appState = "history"
)

type modalState string

const (
	modalNone         modalState = ""
	modalChecklist    modalState = "checklist"
	modalConfirmClear modalState = "confirmClear"
)

// checklist is the open multi-select of one filter field.
type checklist struct {
	spec   filter.FieldSpec
	values []string
	cursor int
}

func New(ctx context.Context, cfg config.Config, gate auth.Gate, services Services, preload *Preload) *App {
	pw := textinput.New()
	pw.Placeholder = "senha"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.Focus()

	path := textinput.New()
	path.Placeholder = "caminho do arquivo .xlsx ou .csv"
	path.CharLimit = 1024

	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		gate:     gate,
		services: services,
		session:  dashboard.NewSession(cfg.Report.ReasonLimit),
		keys:     NewKeyRegistry(),
		preload:  preload,
		state:    viewLogin,
		password: pw,
		path:     path,
		rows:     newRecordTable(),
	}
	if gate.Open() {
		_ = a.session.Login(gate, "")
		a.initCmd = a.afterLogin()
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.initCmd != nil {
		return a.initCmd
	}
	return textinput.Blink
}

// afterLogin admits the preloaded dataset, or starts loading the preload
// path, or opens the import view.
func (a *App) afterLogin() tea.Cmd {
	a.password.Blur()
	a.password.SetValue("")
	switch {
	case a.preload != nil && a.preload.Path != "":
		a.state = viewImport
		a.status = "carregando " + a.preload.Path + "..."
		return a.importFile(a.preload.Path)
	case a.preload != nil:
		if err := a.session.Load(a.preload.Dataset, a.preload.Source); err != nil {
			a.status = errorStyle.Render("erro: " + err.Error())
		}
		a.state = viewDashboard
		a.refresh()
		return nil
	}
	a.state = viewImport
	a.path.Focus()
	return textinput.Blink
}

// refresh recomputes the snapshot after any interaction.
func (a *App) refresh() {
	snap, err := a.session.Snapshot()
	if err != nil {
		if !errors.Is(err, dashboard.ErrNoData) {
			a.status = "erro: " + err.Error()
		}
		return
	}
	a.snap = snap
	a.chart.table = snap.Timeline
	a.chart.focused = snap.Focus.Value
	if a.chart.cursor >= len(snap.Timeline.Rows) {
		a.chart.cursor = len(snap.Timeline.Rows) - 1
	}
	if a.chart.cursor < 0 {
		a.chart.cursor = 0
	}
	a.rows.SetRows(recordRows(snap.TableRows))
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func (a *App) importFile(path string) tea.Cmd {
	svc := a.services.Ingest
	return func() tea.Msg {
		if svc == nil {
			return errMsg{errors.New("importação indisponível")}
		}
		imp, err := svc.ImportFile(a.ctx, path)
		if err != nil {
			return errMsg{err}
		}
		return importedMsg{imported: imp, path: path}
	}
}

func (a *App) export(kind report.Kind) tea.Cmd {
	svc := a.services.Export
	snap, importID := a.snap, a.importID
	return func() tea.Msg {
		if svc == nil {
			return errMsg{errors.New("exportação indisponível")}
		}
		out, err := svc.ExportFor(a.ctx, importID, kind, snap)
		if err != nil {
			return errMsg{err}
		}
		return exportedMsg(out)
	}
}

func (a *App) loadHistory() tea.Cmd {
	svc := a.services.History
	return func() tea.Msg {
		if svc == nil {
			return historyMsg{}
		}
		h, err := svc.Recent(a.ctx, historyLimit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(h)
	}
}

func (a *App) clearHistory() tea.Cmd {
	svc, hist := a.services.Maintenance, a.services.History
	return func() tea.Msg {
		if svc == nil || hist == nil {
			return errMsg{errors.New("manutenção indisponível")}
		}
		if err := svc.ClearHistory(a.ctx); err != nil {
			return errMsg{err}
		}
		h, err := hist.Recent(a.ctx, historyLimit)
		if err != nil {
			return errMsg{err}
		}
		return historyClearedMsg(h)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.rows.SetWidth(m.Width)
		a.rows.SetHeight(max(m.Height-8, 5))
		return a, nil
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewLogin:
			return a.handleLoginKey(m)
		case viewImport:
			return a.handleImportKey(m)
		case viewFilters:
			return a.handleFiltersKey(m)
		case viewTable:
			return a.handleTableKey(m)
		case viewHistory:
			return a.handleHistoryKey(m)
		}
		return a.handleDashboardKey(m)
	case tea.MouseMsg:
		if a.state == viewDashboard && a.modal == modalNone {
			a.handleMouse(m)
		}
		return a, nil
	case importedMsg:
		if err := a.session.Load(m.imported.Dataset, filepath.Base(m.path)); err != nil {
			a.status = "erro: " + err.Error()
			return a, nil
		}
		a.importID = m.imported.ID
		a.filterCursor = 0
		a.check = checklist{}
		res := m.imported.Result
		a.status = okStyle.Render(fmt.Sprintf("%d linhas carregadas de %s", res.Rows, filepath.Base(m.path)))
		if res.Dropped > 0 {
			a.status += mutedStyle.Render(fmt.Sprintf(" (%d sem data descartadas)", res.Dropped))
		}
		a.path.Blur()
		a.state = viewDashboard
		a.chart.cursor = 0
		a.refresh()
	case exportedMsg:
		a.status = okStyle.Render(fmt.Sprintf("relatório salvo em %s (%d linhas)", m.Path, m.Rows))
	case historyMsg:
		a.history = service.History(m)
	case historyClearedMsg:
		a.history = service.History(m)
		a.status = "histórico apagado"
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = errorStyle.Render("erro: " + m.Error())
	}
	return a, nil
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := a.keys.Lookup(m.String(), scopeTextSubmit); b != nil {
		switch b.Action {
		case actionSubmit:
			if err := a.session.Login(a.gate, a.password.Value()); err != nil {
				a.password.SetValue("")
				a.status = errorStyle.Render(err.Error())
				return a, nil
			}
			a.status = ""
			return a, a.afterLogin()
		case actionQuit:
			return a, tea.Quit
		case actionClose:
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.password, cmd = a.password.Update(m)
	return a, cmd
}

func (a *App) handleImportKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := a.keys.Lookup(m.String(), scopeTextSubmit); b != nil {
		switch b.Action {
		case actionSubmit:
			p := strings.TrimSpace(a.path.Value())
			if p == "" {
				a.status = errorStyle.Render("informe o caminho do arquivo")
				return a, nil
			}
			a.status = "carregando " + p + "..."
			return a, a.importFile(expandHome(p))
		case actionQuit:
			return a, tea.Quit
		case actionClose:
			if a.session.Loaded() {
				a.path.Blur()
				a.state = viewDashboard
			}
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.path, cmd = a.path.Update(m)
	return a, cmd
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), scopeDashboard)
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionBarPrev:
		if a.chart.cursor > 0 {
			a.chart.cursor--
		}
	case actionBarNext:
		if a.chart.cursor < len(a.chart.table.Rows)-1 {
			a.chart.cursor++
		}
	case actionClick:
		a.clickBar(a.chart.cursor)
	case actionBack:
		if !a.session.Back() {
			a.status = mutedStyle.Render("já está no nível mais alto")
		}
		a.chart.cursor = 0
		a.refresh()
	case actionReset:
		a.session.Reset()
		a.chart.cursor = 0
		a.refresh()
	case actionClearFocus:
		a.session.ClearFocus()
		a.refresh()
	case actionFilters:
		a.state = viewFilters
	case actionTable:
		a.rows.Focus()
		a.state = viewTable
	case actionHistory:
		a.state = viewHistory
		return a, a.loadHistory()
	case actionImport:
		a.state = viewImport
		a.path.Focus()
		return a, textinput.Blink
	case actionExportXLSX:
		a.status = "exportando xlsx..."
		return a, a.export(report.KindXLSX)
	case actionExportPDF:
		a.status = "exportando pdf..."
		return a, a.export(report.KindPDF)
	}
	return a, nil
}

func (a *App) clickBar(i int) {
	rows := a.chart.table.Rows
	if i < 0 || i >= len(rows) {
		return
	}
	before := a.session.State().Level
	a.session.Click(rows[i].Label)
	if a.session.State().Level != before {
		a.chart.cursor = 0
	}
	a.refresh()
}

func (a *App) handleMouse(m tea.MouseMsg) {
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return
	}
	if m.Y < a.chartTop || m.Y >= a.chartTop+chartHeight+2 {
		return
	}
	if i, ok := a.chart.barAt(m.X); ok {
		a.chart.cursor = i
		a.clickBar(i)
	}
}

// filter panel rows: year, month, single control, then one row per checklist.
const fixedFilterRows = 3

func (a *App) checklists() []filter.FieldSpec {
	fields := a.session.Base().Fields()
	var out []filter.FieldSpec
	for _, spec := range filter.Checklists() {
		if fields.Has(spec.Field) {
			out = append(out, spec)
		}
	}
	return out
}

func (a *App) handleFiltersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), scopeFilters)
	if b == nil {
		return a, nil
	}
	specs := a.checklists()
	total := fixedFilterRows + len(specs)
	a.filterCursor = min(a.filterCursor, total-1)
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionClose:
		a.state = viewDashboard
	case actionUp:
		if a.filterCursor > 0 {
			a.filterCursor--
		}
	case actionDown:
		if a.filterCursor < total-1 {
			a.filterCursor++
		}
	case actionCyclePrev, actionCycleNext:
		step := 1
		if b.Action == actionCyclePrev {
			step = -1
		}
		a.cycleFilter(step)
	case actionSelect:
		if i := a.filterCursor - fixedFilterRows; i >= 0 && i < len(specs) {
			spec := specs[i]
			a.check = checklist{spec: spec, values: a.session.Base().Distinct(spec.Field)}
			a.modal = modalChecklist
		}
	case actionClearFilter:
		a.session.SetSelection(filter.NewSelection())
		a.chart.cursor = 0
		a.refresh()
	}
	return a, nil
}

func (a *App) cycleFilter(step int) {
	sel := a.session.Selection()
	base := a.session.Base()
	switch a.filterCursor {
	case 0:
		years := base.Years()
		opts := make([]*int, 0, len(years)+1)
		opts = append(opts, nil)
		cur := 0
		for i := range years {
			opts = append(opts, &years[i])
			if sel.Year != nil && *sel.Year == years[i] {
				cur = i + 1
			}
		}
		sel = sel.WithYear(opts[wrap(cur+step, len(opts))])
	case 1:
		cur := 0
		if sel.Month != nil {
			cur = int(*sel.Month)
		}
		next := wrap(cur+step, 13)
		if next == 0 {
			sel = sel.WithMonth(nil)
		} else {
			m := time.Month(next)
			sel = sel.WithMonth(&m)
		}
	case 2:
		if !base.Fields().Has(sel.SingleField) {
			return
		}
		opts := append([]string{""}, base.Distinct(sel.SingleField)...)
		cur := 0
		for i, v := range opts {
			if v == sel.SingleValue {
				cur = i
			}
		}
		sel = sel.WithSingle(opts[wrap(cur+step, len(opts))])
	default:
		return
	}
	a.session.SetSelection(sel)
	a.refresh()
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmClear:
		b := a.keys.Lookup(m.String(), scopeConfirm)
		if b == nil {
			return a, nil
		}
		a.modal = modalNone
		if b.Action == actionConfirm {
			return a, a.clearHistory()
		}
		if b.Action == actionQuit {
			return a, tea.Quit
		}
		a.status = "cancelado"
	case modalChecklist:
		b := a.keys.Lookup(m.String(), scopeChecklist)
		if b == nil {
			return a, nil
		}
		f := a.check.spec.Field
		sel := a.session.Selection()
		switch b.Action {
		case actionQuit:
			return a, tea.Quit
		case actionClose:
			a.modal = modalNone
			return a, nil
		case actionUp:
			if a.check.cursor > 0 {
				a.check.cursor--
			}
			return a, nil
		case actionDown:
			if a.check.cursor < len(a.check.values)-1 {
				a.check.cursor++
			}
			return a, nil
		case actionToggle:
			if len(a.check.values) == 0 {
				return a, nil
			}
			sel = sel.Toggle(f, a.check.values[a.check.cursor], a.check.values)
		case actionSelectAll:
			sel = sel.WithAll(f)
		case actionSelectNone:
			sel = sel.WithAllowed(f)
		}
		a.session.SetSelection(sel)
		a.refresh()
	}
	return a, nil
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := a.keys.Lookup(m.String(), scopeTable); b != nil {
		switch b.Action {
		case actionQuit:
			return a, tea.Quit
		case actionClose:
			a.rows.Blur()
			a.state = viewDashboard
			return a, nil
		case actionClearFocus:
			a.session.ClearFocus()
			a.refresh()
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.rows, cmd = a.rows.Update(m)
	return a, cmd
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), scopeHistory)
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionClose:
		a.state = viewDashboard
	case actionClearLog:
		a.modal = modalConfirmClear
	}
	return a, nil
}

func (a *App) View() string {
	var body, scope string
	switch a.state {
	case viewLogin:
		body, scope = a.renderLogin(), scopeTextSubmit
	case viewImport:
		body, scope = a.renderImport(), scopeTextSubmit
	case viewFilters:
		body, scope = a.renderFilters(), scopeFilters
	case viewTable:
		body, scope = a.renderTable(), scopeTable
	case viewHistory:
		body, scope = a.renderHistory(), scopeHistory
	default:
		body, scope = a.renderDashboard(), scopeDashboard
	}
	var box string
	switch a.modal {
	case modalChecklist:
		box, scope = a.renderChecklist(), scopeChecklist
	case modalConfirmClear:
		box, scope = titleStyle.Render("Apagar todo o histórico de importações e exportações?"), scopeConfirm
	}
	if box != "" {
		width, height := a.width, a.height
		if width <= 0 {
			width = 120
		}
		if height <= 0 {
			height = lipgloss.Height(body)
		}
		body = overlayCenter(body, modalStyle.Render(box), width, height)
	}
	body += "\n\n" + mutedStyle.Render(a.keys.Footer(scope))
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) appName() string {
	if a.cfg.App.Name != "" {
		return a.cfg.App.Name
	}
	return "Indicadores de Qualidade"
}

func (a *App) renderLogin() string {
	return fmt.Sprintf("%s\n\nAcesso restrito. Informe a senha:\n\n%s",
		titleStyle.Render(a.appName()), a.password.View())
}

func (a *App) renderImport() string {
	hint := "Carregue a planilha de reclamações (xlsx ou csv)."
	if a.session.Loaded() {
		hint += " Arquivo atual: " + a.session.Source()
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", titleStyle.Render("Importar arquivo"), hint, a.path.View())
}

func (a *App) renderDashboard() string {
	if !a.session.Loaded() {
		return titleStyle.Render(a.appName()) + "\n\nNenhum arquivo carregado. [i] importar"
	}
	snap := a.snap
	width := a.width
	if width <= 0 {
		width = 120
	}

	header := titleStyle.Render(a.appName()) + "\n" +
		mutedStyle.Render(snap.Source+"  ·  "+snap.Selection.Describe()) + "\n" +
		sectionStyle.Render(snap.Breadcrumb())

	cards := make([]string, 0, 7)
	for _, k := range report.KPIs(snap) {
		cards = append(cards, kpiBoxStyle.Render(kpiLabelStyle.Render(k[0])+"\n"+kpiValueStyle.Render(k[1])))
	}
	above := lipgloss.JoinVertical(lipgloss.Left, header, "", lipgloss.JoinHorizontal(lipgloss.Top, cards...), "")

	timeTitle := sectionStyle.Render(snap.Timeline.Title)
	if snap.CanBack {
		timeTitle += mutedStyle.Render("  [b] voltar")
	}
	a.chartTop = lipgloss.Height(above) + 1
	var chart string
	if len(snap.Timeline.Rows) == 0 {
		chart = mutedStyle.Render("(sem dados para a seleção)")
	} else {
		chart = a.chart.render(width, chartHeight)
	}

	colW := (width - 2) / 2
	cell := lipgloss.NewStyle().Width(colW).MarginRight(2)
	panels := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			cell.Render(hbars(snap.Reasons, colW, hbarRows)),
			hbars(snap.Responsible, colW, hbarRows),
		),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			cell.Render(hbars(snap.Lateness, colW, hbarRows)),
			hbars(snap.Categories, colW, hbarRows),
		),
	)

	tableInfo := fmt.Sprintf("Tabela: %d de %d ocorrências", snap.TableRows.Len(), snap.Scoped.Len())
	if snap.Focus.Set() {
		tableInfo += "  [" + snap.Focus.Describe() + "]"
	}
	return lipgloss.JoinVertical(lipgloss.Left, above, timeTitle, chart, "", panels, "", mutedStyle.Render(tableInfo))
}

func (a *App) renderFilters() string {
	sel := a.session.Selection()
	base := a.session.Base()
	lines := []string{titleStyle.Render("Filtros"), ""}

	year, month, single := "Todos", "Todos", "Todos"
	if sel.Year != nil {
		year = fmt.Sprint(*sel.Year)
	}
	if sel.Month != nil {
		month = complaint.MonthAbbrev(*sel.Month)
	}
	if sel.SingleValue != "" {
		single = sel.SingleValue
	}
	rows := []string{
		"Ano: ‹ " + year + " ›",
		"Mês: ‹ " + month + " ›",
		sel.SingleField.Label() + ": ‹ " + single + " ›",
	}
	specs := a.checklists()
	a.filterCursor = min(a.filterCursor, fixedFilterRows+len(specs)-1)
	for _, spec := range specs {
		summary := "todos"
		if set, ok := sel.Allowed(spec.Field); ok {
			summary = fmt.Sprintf("%d de %d", len(set), len(base.Distinct(spec.Field)))
		}
		rows = append(rows, fmt.Sprintf("%s: %s", spec.Label, summary))
	}
	for i, r := range rows {
		prefix := "  "
		if i == a.filterCursor {
			prefix = "> "
			r = cursorLabelStyle.Render(r)
		}
		lines = append(lines, prefix+r)
	}
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("%d de %d ocorrências selecionadas", a.snap.View.Len(), base.Len())))
	return strings.Join(lines, "\n")
}

func (a *App) renderChecklist() string {
	sel := a.session.Selection()
	f := a.check.spec.Field
	lines := []string{sectionStyle.Render(a.check.spec.Label)}
	if len(a.check.values) == 0 {
		lines = append(lines, mutedStyle.Render("(sem valores)"))
	}
	for i, v := range a.check.values {
		mark := "[ ]"
		if sel.Selected(f, v) {
			mark = "[x]"
		}
		line := mark + " " + v
		if i == a.check.cursor {
			line = cursorLabelStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderTable() string {
	title := titleStyle.Render(fmt.Sprintf("Ocorrências (%d)", a.snap.TableRows.Len()))
	if a.snap.Focus.Set() {
		title += mutedStyle.Render("  " + a.snap.Focus.Describe())
	}
	return title + "\n" + a.rows.View()
}

func (a *App) renderHistory() string {
	lines := []string{titleStyle.Render("Histórico"), "", sectionStyle.Render("Importações")}
	if len(a.history.Imports) == 0 {
		lines = append(lines, mutedStyle.Render("  nenhuma"))
	}
	for _, im := range a.history.Imports {
		lines = append(lines, fmt.Sprintf("  %s  %-32s %-4s %5d linhas  %d descartadas",
			im.ImportedAt.Local().Format("02/01/2006 15:04"), im.FileName, im.Format, im.RowsLoaded, im.RowsDropped))
	}
	lines = append(lines, "", sectionStyle.Render("Exportações"))
	if len(a.history.Exports) == 0 {
		lines = append(lines, mutedStyle.Render("  nenhuma"))
	}
	for _, ex := range a.history.Exports {
		lines = append(lines, fmt.Sprintf("  %s  %-4s %-44s %5d linhas  %s",
			ex.CreatedAt.Local().Format("02/01/2006 15:04"), ex.Kind, ex.FileName, ex.Rows, ex.Filters))
	}
	return strings.Join(lines, "\n")
}

var recordColumnWidths = []int{10, 28, 12, 11, 22, 8, 18, 18, 14, 16, 10}

func newRecordTable() table.Model {
	cols := make([]table.Column, len(report.RecordHeaders))
	for i, h := range report.RecordHeaders {
		cols[i] = table.Column{Title: h, Width: recordColumnWidths[i]}
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(15))
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorBlue)
	s.Selected = s.Selected.Foreground(colorPeach).Bold(true)
	t.SetStyles(s)
	return t
}

func recordRows(ds complaint.Dataset) []table.Row {
	out := make([]table.Row, 0, ds.Len())
	for _, r := range ds.Records() {
		out = append(out, table.Row(report.RecordRow(r)))
	}
	return out
}

type statusMsg string

type errMsg struct{ error }

type importedMsg struct {
	imported service.Imported
	path     string
}

type exportedMsg service.Exported

type historyMsg service.History

type historyClearedMsg service.History
