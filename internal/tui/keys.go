package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry resolves key presses to actions per view scope. Keys not
// bound in a scope fall back to the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal     = "global"
	scopeLogin      = "login"
	scopeImport     = "import"
	scopeDashboard  = "dashboard"
	scopeFilters    = "filters"
	scopeChecklist  = "checklist"
	scopeTable      = "table"
	scopeHistory    = "history"
	scopeConfirm    = "confirm"
	scopeTextSubmit = "text_submit"
)

const (
	actionQuit        Action = "quit"
	actionBarPrev     Action = "bar_prev"
	actionBarNext     Action = "bar_next"
	actionClick       Action = "click"
	actionBack        Action = "back"
	actionReset       Action = "reset"
	actionClearFocus  Action = "clear_focus"
	actionExportXLSX  Action = "export_xlsx"
	actionExportPDF   Action = "export_pdf"
	actionFilters     Action = "filters"
	actionTable       Action = "table"
	actionHistory     Action = "history"
	actionImport      Action = "import"
	actionClose       Action = "close"
	actionUp          Action = "up"
	actionDown        Action = "down"
	actionCyclePrev   Action = "cycle_prev"
	actionCycleNext   Action = "cycle_next"
	actionSelect      Action = "select"
	actionToggle      Action = "toggle"
	actionSelectAll   Action = "select_all"
	actionSelectNone  Action = "select_none"
	actionClearFilter Action = "clear_filters"
	actionSubmit      Action = "submit"
	actionConfirm     Action = "confirm"
	actionCancel      Action = "cancel"
	actionClearLog    Action = "clear_log"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "sair")

	reg(scopeTextSubmit, actionSubmit, []string{"enter"}, "confirmar")
	reg(scopeTextSubmit, actionClose, []string{"esc"}, "voltar")

	reg(scopeDashboard, actionBarPrev, []string{"left", "shift+tab"}, "barra anterior")
	reg(scopeDashboard, actionBarNext, []string{"right", "tab"}, "próxima barra")
	reg(scopeDashboard, actionClick, []string{"enter"}, "clicar")
	reg(scopeDashboard, actionBack, []string{"b", "backspace"}, "voltar nível")
	reg(scopeDashboard, actionReset, []string{"r"}, "reiniciar")
	reg(scopeDashboard, actionClearFocus, []string{"c"}, "limpar seleção")
	reg(scopeDashboard, actionFilters, []string{"f"}, "filtros")
	reg(scopeDashboard, actionTable, []string{"t"}, "tabela")
	reg(scopeDashboard, actionExportXLSX, []string{"x"}, "exportar xlsx")
	reg(scopeDashboard, actionExportPDF, []string{"p"}, "exportar pdf")
	reg(scopeDashboard, actionHistory, []string{"h"}, "histórico")
	reg(scopeDashboard, actionImport, []string{"i"}, "importar")
	reg(scopeDashboard, actionQuit, []string{"q", "ctrl+c"}, "sair")

	reg(scopeFilters, actionUp, []string{"up", "k"}, "cima")
	reg(scopeFilters, actionDown, []string{"down", "j"}, "baixo")
	reg(scopeFilters, actionCyclePrev, []string{"left", "h"}, "anterior")
	reg(scopeFilters, actionCycleNext, []string{"right", "l"}, "próximo")
	reg(scopeFilters, actionSelect, []string{"enter"}, "abrir lista")
	reg(scopeFilters, actionClearFilter, []string{"r"}, "limpar filtros")
	reg(scopeFilters, actionClose, []string{"esc", "f"}, "painel")
	reg(scopeFilters, actionQuit, []string{"q", "ctrl+c"}, "sair")

	reg(scopeChecklist, actionUp, []string{"up", "k"}, "cima")
	reg(scopeChecklist, actionDown, []string{"down", "j"}, "baixo")
	reg(scopeChecklist, actionToggle, []string{"space", "enter"}, "marcar")
	reg(scopeChecklist, actionSelectAll, []string{"a"}, "todos")
	reg(scopeChecklist, actionSelectNone, []string{"n"}, "nenhum")
	reg(scopeChecklist, actionClose, []string{"esc"}, "voltar")

	reg(scopeTable, actionClearFocus, []string{"c"}, "limpar seleção")
	reg(scopeTable, actionClose, []string{"esc", "t"}, "painel")
	reg(scopeTable, actionQuit, []string{"q", "ctrl+c"}, "sair")

	reg(scopeHistory, actionClearLog, []string{"D"}, "apagar histórico")
	reg(scopeHistory, actionClose, []string{"esc", "h"}, "painel")
	reg(scopeHistory, actionQuit, []string{"q", "ctrl+c"}, "sair")

	reg(scopeConfirm, actionConfirm, []string{"y", "s"}, "sim")
	reg(scopeConfirm, actionCancel, []string{"n", "esc"}, "não")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		if b := r.lookupInScope(keyName, scopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

// Footer renders the scope's bindings as "[key] help" hints.
func (r *KeyRegistry) Footer(scope string) string {
	parts := make([]string, 0, len(r.bindingsByScope[scope]))
	for _, b := range r.HelpBindings(scope) {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	switch strings.ToLower(trimmed) {
	case "esc", "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return trimmed
}
