package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/junhokim/banksettle/internal/config"
	"github.com/junhokim/banksettle/internal/service"
	"github.com/junhokim/banksettle/internal/settle"
)

// App ties together views.
type App struct {
	ctx       context.Context
	services  Services
	cfg       config.Config
	state     appState
	view      service.View
	occCursor int
	corCursor int
	status    string
	tz        *time.Location
	currency  string
	days      int
	modal     modalState
}

type Services struct {
	Projection  *service.ProjectionService
	Corrections *service.CorrectionService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewProjection  appState = "projection"
	viewCorrections appState = "corrections"
)

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, services Services, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	return &App{
		ctx:      ctx,
		services: services,
		cfg:      cfg,
		state:    viewProjection,
		tz:       tz,
		currency: cfg.UI.CurrencySymbol,
		days:     cfg.Settle.WindowDays,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadView()
}

func (a *App) loadView() tea.Cmd {
	return func() tea.Msg {
		v, err := a.services.Projection.GenerateView(a.ctx, a.days)
		if err != nil {
			return errMsg{err}
		}
		return viewMsg(v)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "tab":
			if a.state == viewProjection {
				a.state = viewCorrections
			} else {
				a.state = viewProjection
			}
			a.status = ""
		case "r":
			a.status = "reloading..."
			return a, a.loadView()
		case "up", "k":
			if a.state == viewProjection && a.occCursor > 0 {
				a.occCursor--
			}
			if a.state == viewCorrections && a.corCursor > 0 {
				a.corCursor--
			}
		case "down", "j":
			if a.state == viewProjection && a.occCursor < len(a.view.Occurrences)-1 {
				a.occCursor++
			}
			if a.state == viewCorrections && a.corCursor < len(a.view.PendingCorrections)-1 {
				a.corCursor++
			}
		case "x":
			if a.state == viewProjection && len(a.view.Occurrences) > 0 {
				return a, a.toggleExcludeCmd(a.view.Occurrences[a.occCursor].Key)
			}
		case "c":
			if a.state == viewProjection && len(a.view.Occurrences) > 0 {
				occ := a.view.Occurrences[a.occCursor]
				next := "confirmed"
				if string(occ.Status) == "confirmed" {
					next = "pending"
				}
				return a, a.setStatusCmd(occ.Key, next)
			}
		case "+", "=":
			if a.state == viewProjection && len(a.view.Occurrences) > 0 {
				return a, a.shiftCmd(a.view.Occurrences[a.occCursor].Key, 1)
			}
		case "-":
			if a.state == viewProjection && len(a.view.Occurrences) > 0 {
				return a, a.shiftCmd(a.view.Occurrences[a.occCursor].Key, -1)
			}
		case "a", "y":
			if a.state == viewCorrections && len(a.view.PendingCorrections) > 0 {
				return a, a.approveCmd(a.view.PendingCorrections[a.corCursor].ID)
			}
		case "d", "n":
			if a.state == viewCorrections && len(a.view.PendingCorrections) > 0 {
				return a, a.dismissCmd(a.view.PendingCorrections[a.corCursor].ID)
			}
		case "X":
			a.modal = modalConfirmReset
		}
	case viewMsg:
		a.view = service.View(m)
		if a.occCursor >= len(a.view.Occurrences) {
			a.occCursor = 0
		}
		if a.corCursor >= len(a.view.PendingCorrections) {
			a.corCursor = 0
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		a.modal = modalNone
		return a, a.resetCmd()
	case "n", "N", "esc":
		a.modal = modalNone
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewCorrections:
		body = a.renderCorrections()
	default:
		body = a.renderProjection()
	}
	if a.modal != modalNone {
		body += "\n\n" + titleStyle.Render("Reset database?") + "\nThis will delete all settle data.\n[y] Yes  [n] No"
	}
	return body
}

// commands
func (a *App) toggleExcludeCmd(key string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Projection.ToggleExclude(a.ctx, key); err != nil {
				return errMsg{err}
			}
			return statusMsg("exclusion toggled")
		},
		a.loadView(),
	)
}

func (a *App) setStatusCmd(key, status string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Projection.SetStatus(a.ctx, key, settle.Status(status)); err != nil {
				return errMsg{err}
			}
			return statusMsg("status: " + status)
		},
		a.loadView(),
	)
}

func (a *App) shiftCmd(key string, delta int) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Projection.ShiftDate(a.ctx, key, delta); err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("shifted %+d day", delta))
		},
		a.loadView(),
	)
}

func (a *App) approveCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Corrections.Approve(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("correction approved")
		},
		a.loadView(),
	)
}

func (a *App) dismissCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Corrections.Dismiss(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("correction dismissed")
		},
		a.loadView(),
	)
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if a.services.Maintenance == nil {
				return errMsg{fmt.Errorf("maintenance not configured")}
			}
			if err := a.services.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			a.occCursor, a.corCursor = 0, 0
			return statusMsg("database reset (empty)")
		},
		a.loadView(),
	)
}

// messages
type viewMsg service.View

type statusMsg string

type errMsg struct{ error }

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	excludedStyle = lipgloss.NewStyle().Faint(true)
	incomeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	expenseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (a *App) renderProjection() string {
	today := time.Now().In(a.tz)
	title := titleStyle.Render("BankSettle - " + today.Format("2006-01-02"))
	sum := a.view.Summary
	out := title + "\n"
	out += fmt.Sprintf("현재 잔고: %s%s   오늘 예상: %s%s   %d일 예상: %s%s   제외: %d\n",
		a.currency, money(sum.CurrentBalance),
		a.currency, money(sum.TodayPredicted),
		a.days, a.currency, money(sum.WindowPredicted),
		sum.ExcludedCount)

	if len(a.view.Occurrences) == 0 {
		out += "(no settle items in window)\n"
	}
	for i, occ := range a.view.Occurrences {
		marker := " "
		if i == a.occCursor {
			marker = "▶"
		}
		flags := occurrenceFlags(occ.Excluded, string(occ.Status), occ.IsPending, occ.IsBlock, occ.ExcludeReason)
		line := fmt.Sprintf("%s %s  %-22s %10s  잔고 %12s  %s",
			marker, occ.Date.In(a.tz).Format("01-02 Mon"), occ.Name,
			signedMoney(string(occ.Direction), occ.Amount), money(occ.Balance), flags)
		switch {
		case occ.Excluded:
			line = excludedStyle.Render(line)
		case occ.Direction == "income":
			line = incomeStyle.Render(line)
		default:
			line = expenseStyle.Render(line)
		}
		out += line + "\n"
	}
	out += fmt.Sprintf("\n[x] Exclude  [c] Confirm  [+/-] Shift  [tab] Corrections (%d)  [r] Reload  [X] Reset  [q] Quit", len(a.view.PendingCorrections))
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderCorrections() string {
	title := titleStyle.Render("Pending Corrections")
	out := title + "\n"
	if len(a.view.PendingCorrections) == 0 {
		out += "No pending corrections.\n"
	}
	for i, c := range a.view.PendingCorrections {
		marker := " "
		if i == a.corCursor {
			marker = "▶"
		}
		amount := "-"
		if c.NewAmount != nil {
			amount = a.currency + money(*c.NewAmount)
		}
		out += fmt.Sprintf("%s %-22s <- %-22s  new %12s  (tx %s%s)\n",
			marker, c.ItemName, c.Counterparty, amount, a.currency, money(c.TxAmount))
	}
	out += "\n[a] Approve  [d] Dismiss  [tab] Projection  [r] Reload  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func occurrenceFlags(excluded bool, status string, isPending, isBlock bool, reason string) string {
	var parts []string
	if status == "confirmed" {
		parts = append(parts, "확정")
	}
	if isPending {
		parts = append(parts, "대기")
	}
	if isBlock {
		parts = append(parts, "블럭")
	}
	if excluded {
		if reason != "" {
			parts = append(parts, "제외:"+reason)
		} else {
			parts = append(parts, "제외")
		}
	}
	return strings.Join(parts, " ")
}

func signedMoney(direction string, amount int64) string {
	if direction == "expense" {
		return "-" + money(amount)
	}
	return "+" + money(amount)
}

// money renders minor-unit amounts with thousands separators.
func money(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
