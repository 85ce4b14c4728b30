// Package tui is the terminal front end: read-mostly dashboards over the
// metrics engine plus a few maintenance actions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/analytics"
	"github.com/jask/moneylens/internal/config"
	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/ledger"
	"github.com/jask/moneylens/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config

	state        appState
	period       analytics.Period
	transactions []ledger.Transaction
	budgets      []ledger.Budget
	goals        []ledger.Goal
	achievements []ledger.Achievement
	duplicates   []service.DuplicatePair

	txCursor     int
	budgetCursor int
	goalCursor   int
	dupCursor    int

	modal      modalState
	status     string
	loc        *time.Location
	currency   string
	dateFormat string
	insights   analytics.InsightEngine
}

type Repos struct {
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
	Budgets      *repository.BudgetRepo
	Goals        *repository.GoalRepo
}

type Services struct {
	Categorizer  *service.AutoCategorizer
	Duplicates   *service.DuplicateService
	Achievements *service.AchievementService
	Maintenance  *service.MaintenanceService
}

type appState string

const (
	viewDashboard    appState = "dashboard"
	viewTransactions appState = "transactions"
	viewBudgets      appState = "budgets"
	viewGoals        appState = "goals"
	viewForecast     appState = "forecast"
	viewAchievements appState = "achievements"
	viewDuplicates   appState = "duplicates"
)

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, loc *time.Location) *App {
	if loc == nil {
		loc = time.Local
	}
	return &App{
		ctx:        ctx,
		repos:      repos,
		services:   services,
		cfg:        cfg,
		period:     analytics.PeriodMonth,
		loc:        loc,
		currency:   cfg.UI.CurrencySymbol,
		dateFormat: cfg.UI.DateFormat,
		insights:   analytics.InsightEngine{Currency: cfg.UI.CurrencySymbol, Loc: loc},
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadTransactions(), a.loadBudgets(), a.loadGoals(), a.refreshAchievements())
}

// commands

func (a *App) loadTransactions() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Transactions.List(a.ctx, repository.TransactionFilters{})
		if err != nil {
			return errMsg{err}
		}
		return transactionsMsg(list)
	}
}

func (a *App) loadBudgets() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Budgets.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return budgetsMsg(list)
	}
}

func (a *App) loadGoals() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Goals.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return goalsMsg(list)
	}
}

func (a *App) refreshAchievements() tea.Cmd {
	return func() tea.Msg {
		if a.services.Achievements == nil {
			return achievementsMsg(nil)
		}
		achs, err := a.services.Achievements.Refresh(a.ctx, time.Now())
		if err != nil {
			return errMsg{err}
		}
		return achievementsMsg(achs)
	}
}

func (a *App) categorizeAllCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			n, err := a.services.Categorizer.Run(a.ctx)
			if err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("categorized %d transactions", n))
		},
		a.loadTransactions(),
	)
}

func (a *App) detectDuplicatesCmd() tea.Cmd {
	return func() tea.Msg {
		pairs, err := a.services.Duplicates.Detect(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return duplicatesMsg(pairs)
	}
}

func (a *App) deleteTransactionCmd(t ledger.Transaction) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Transactions.Delete(a.ctx, t.ID); err != nil {
				return errMsg{err}
			}
			return statusMsg("transaction deleted")
		},
		a.loadTransactions(),
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
			return resetDoneMsg{}
		},
		a.loadTransactions(),
		a.loadBudgets(),
		a.loadGoals(),
	)
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
		case "d":
			a.state = viewDashboard
		case "t":
			a.state = viewTransactions
		case "b":
			a.state = viewBudgets
		case "o":
			a.state = viewGoals
		case "f":
			a.state = viewForecast
		case "a":
			a.state = viewAchievements
			return a, a.refreshAchievements()
		case "u":
			a.state = viewDuplicates
			a.status = "scanning..."
			return a, a.detectDuplicatesCmd()
		case "p":
			a.period = nextPeriod(a.period)
			a.clampTxCursor()
		case "g":
			if a.state == viewTransactions {
				a.status = "categorizing..."
				return a, a.categorizeAllCmd()
			}
		case "x":
			a.modal = modalConfirmReset
		case "backspace", "delete":
			if a.state == viewTransactions {
				vis := a.visibleTransactions()
				if len(vis) > 0 {
					a.clampTxCursor()
					return a, a.deleteTransactionCmd(vis[a.txCursor])
				}
			}
		case "up", "k":
			a.moveCursor(-1)
		case "down", "j":
			a.moveCursor(1)
		}
	case transactionsMsg:
		a.transactions = []ledger.Transaction(m)
		a.clampTxCursor()
	case budgetsMsg:
		a.budgets = []ledger.Budget(m)
		if a.budgetCursor >= len(a.budgets) {
			a.budgetCursor = 0
		}
	case goalsMsg:
		a.goals = []ledger.Goal(m)
		if a.goalCursor >= len(a.goals) {
			a.goalCursor = 0
		}
	case achievementsMsg:
		a.achievements = []ledger.Achievement(m)
	case duplicatesMsg:
		a.duplicates = []service.DuplicatePair(m)
		a.status = fmt.Sprintf("%d candidate pairs", len(a.duplicates))
		if a.dupCursor >= len(a.duplicates) {
			a.dupCursor = 0
		}
	case resetDoneMsg:
		a.txCursor, a.budgetCursor, a.goalCursor, a.dupCursor = 0, 0, 0, 0
		a.status = "database reset"
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

func (a *App) moveCursor(delta int) {
	clamp := func(cur *int, n int) {
		next := *cur + delta
		if next >= 0 && next < n {
			*cur = next
		}
	}
	switch a.state {
	case viewTransactions:
		clamp(&a.txCursor, len(a.visibleTransactions()))
	case viewBudgets:
		clamp(&a.budgetCursor, len(a.budgets))
	case viewGoals:
		clamp(&a.goalCursor, len(a.goals))
	case viewDuplicates:
		clamp(&a.dupCursor, len(a.duplicates))
	}
}

// clampTxCursor keeps the transaction cursor inside the period-filtered list,
// which shrinks when the period changes or the list reloads.
func (a *App) clampTxCursor() {
	n := len(a.visibleTransactions())
	if a.txCursor >= n {
		a.txCursor = n - 1
	}
	if a.txCursor < 0 {
		a.txCursor = 0
	}
}

func nextPeriod(p analytics.Period) analytics.Period {
	switch p {
	case analytics.PeriodWeek:
		return analytics.PeriodMonth
	case analytics.PeriodMonth:
		return analytics.PeriodYear
	case analytics.PeriodYear:
		return analytics.PeriodAll
	default:
		return analytics.PeriodWeek
	}
}

// visibleTransactions filters the loaded list down to the active period.
func (a *App) visibleTransactions() []ledger.Transaction {
	iv := analytics.StatisticsWindow(a.period, time.Now(), a.loc)
	return analytics.Filter(a.transactions, analytics.TxFilter{Interval: &iv})
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewTransactions:
		body = a.renderTransactions()
	case viewBudgets:
		body = a.renderBudgets()
	case viewGoals:
		body = a.renderGoals()
	case viewForecast:
		body = a.renderForecast()
	case viewAchievements:
		body = a.renderAchievements()
	case viewDuplicates:
		body = a.renderDuplicates()
	default:
		body = a.renderDashboard()
	}
	if a.modal == modalConfirmReset {
		body += "\n\n" + titleStyle.Render("Reset database?") + "\nThis will delete all data.\n[y] Yes  [n] No"
	}
	return body
}

// messages
type transactionsMsg []ledger.Transaction

type budgetsMsg []ledger.Budget

type goalsMsg []ledger.Goal

type achievementsMsg []ledger.Achievement

type duplicatesMsg []service.DuplicatePair

type statusMsg string

// resetDoneMsg reports a completed database reset.
type resetDoneMsg struct{}

type errMsg struct{ error }

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	incomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	spendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func (a *App) money(d decimal.Decimal) string {
	return a.currency + d.StringFixed(2)
}

func progressBar(p decimal.Decimal, width int) string {
	filled := int(p.Mul(decimal.NewFromInt(int64(width))).IntPart())
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func periodLabel(p analytics.Period) string {
	switch p {
	case analytics.PeriodWeek:
		return "This Week"
	case analytics.PeriodMonth:
		return "This Month"
	case analytics.PeriodYear:
		return "This Year"
	default:
		return "All Time"
	}
}

func (a *App) renderDashboard() string {
	now := time.Now()
	title := titleStyle.Render("MoneyLens - " + periodLabel(a.period))

	totals := analytics.TotalsForPeriod(a.transactions, a.period, now, a.loc)
	body := fmt.Sprintf("Income: %s  Expenses: %s  Net: %s",
		incomeStyle.Render(a.money(totals.Income)),
		spendStyle.Render(a.money(totals.Expense)),
		a.money(totals.Income.Sub(totals.Expense)))
	body += fmt.Sprintf("\nBalance (all time): %s", a.money(analytics.Balance(a.transactions)))

	shares := analytics.CategoryBreakdown(a.transactions, a.period, now, a.loc)
	if len(shares) > 5 {
		shares = shares[:5]
	}
	if len(shares) > 0 {
		body += "\n\nTop categories:"
		for _, s := range shares {
			body += fmt.Sprintf("\n- %-20s %10s  %5.1f%%", s.CategoryName, a.money(s.Amount), s.Percentage.InexactFloat64())
		}
	}

	for _, line := range a.insights.Insights(a.transactions, now) {
		body += "\n" + dimStyle.Render("• "+line)
	}
	for _, line := range a.insights.Recommendations(a.transactions, a.budgets, now) {
		body += "\n" + spendStyle.Render("! "+line)
	}

	body += "\n\n[t] Transactions  [b] Budgets  [o] Goals  [f] Forecast  [a] Achievements  [u] Duplicates  [p] Period  [q] Quit"
	if a.status != "" {
		body += "\n" + a.status
	}
	return title + "\n" + body
}

func (a *App) renderTransactions() string {
	title := titleStyle.Render("Transactions - " + periodLabel(a.period))
	out := title + "\n"
	vis := a.visibleTransactions()
	if len(vis) == 0 {
		out += "(no transactions in this period)\n"
	}
	for i, t := range vis {
		marker := " "
		if i == a.txCursor {
			marker = "▶"
		}
		amount := a.money(t.Amount)
		if t.Type == ledger.TypeExpense {
			amount = spendStyle.Render("-" + amount)
		} else {
			amount = incomeStyle.Render("+" + amount)
		}
		label := t.CategoryName
		if label == "" {
			label = "[uncategorized]"
		}
		note := t.Note
		if len(t.Tags) > 0 {
			var names []string
			for _, tg := range t.Tags {
				names = append(names, tg.Name)
			}
			note += " [" + strings.Join(names, ", ") + "]"
		}
		out += fmt.Sprintf("%s %s  %-36s  %12s  %s\n",
			marker, t.Date.In(a.loc).Format(a.dateFormat), note, amount, label)
	}
	out += "[g] Auto-categorize  [del] Delete  [p] Period  [d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderBudgets() string {
	now := time.Now()
	title := titleStyle.Render("Budgets")
	if len(a.budgets) == 0 {
		return title + "\nNo budgets configured.\n[d] Dashboard  [q] Quit"
	}
	out := title + "\n"
	for i, b := range a.budgets {
		marker := " "
		if i == a.budgetCursor {
			marker = "▶"
		}
		st := analytics.StatusForBudget(b, a.transactions, now, a.loc)
		line := fmt.Sprintf("%s %-16s %-8s %s %s of %s",
			marker, b.CategoryName, b.Period, progressBar(st.Progress, 20),
			a.money(st.Spent), a.money(b.Amount))
		if st.Remaining.IsNegative() {
			line += spendStyle.Render(fmt.Sprintf("  over by %s", a.money(st.Remaining.Neg())))
		} else {
			line += dimStyle.Render(fmt.Sprintf("  %s left", a.money(st.Remaining)))
		}
		out += line + "\n"
	}
	for _, alert := range analytics.BudgetAlerts(a.budgets, a.transactions, now, a.loc) {
		out += spendStyle.Render(fmt.Sprintf("! %s budget %s\n", alert.Budget.CategoryName, alert.Level))
	}
	out += "[d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderGoals() string {
	now := time.Now()
	title := titleStyle.Render("Goals")
	if len(a.goals) == 0 {
		return title + "\nNo goals yet.\n[d] Dashboard  [q] Quit"
	}
	out := title + "\n"
	for i, g := range a.goals {
		marker := " "
		if i == a.goalCursor {
			marker = "▶"
		}
		st := analytics.StatusForGoal(g, now)
		days := ""
		switch {
		case st.DaysRemaining < 0:
			days = spendStyle.Render(fmt.Sprintf("overdue by %d days", -st.DaysRemaining))
		default:
			days = fmt.Sprintf("%d days left", st.DaysRemaining)
		}
		out += fmt.Sprintf("%s %-20s %s %s of %s  %s\n",
			marker, g.Name, progressBar(st.Progress, 20),
			a.money(g.CurrentAmount), a.money(g.TargetAmount), days)
	}
	out += "[d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderForecast() string {
	now := time.Now()
	title := titleStyle.Render("Spending Forecast")
	out := title + "\n"

	prediction := analytics.PredictNextPeriod(a.transactions, now, a.loc)
	out += fmt.Sprintf("Predicted next month: %s\n\n", a.money(prediction))

	series := analytics.ForecastSeries(a.transactions, 3, now, a.loc)
	maxAmount := decimal.Zero
	for _, p := range series {
		if p.Amount.GreaterThan(maxAmount) {
			maxAmount = p.Amount
		}
	}
	for _, p := range series {
		bar := ""
		if maxAmount.IsPositive() {
			width := int(p.Amount.Div(maxAmount).Mul(decimal.NewFromInt(30)).IntPart())
			bar = strings.Repeat("█", width)
		}
		label := p.Month.Format("Jan 2006")
		if p.Forecast {
			out += fmt.Sprintf("%s %s %s %s\n", label, dimStyle.Render(bar), a.money(p.Amount), dimStyle.Render("(forecast)"))
		} else {
			out += fmt.Sprintf("%s %s %s\n", label, bar, a.money(p.Amount))
		}
	}
	out += "\n[d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderAchievements() string {
	title := titleStyle.Render("Achievements")
	out := title + "\n"
	if len(a.achievements) == 0 {
		out += "(none)\n"
	}
	for _, ach := range a.achievements {
		if ach.Unlocked {
			when := ""
			if ach.UnlockedAt != nil {
				when = ach.UnlockedAt.In(a.loc).Format("02 Jan 2006")
			}
			out += fmt.Sprintf("✓ %-16s %s  %s\n", ach.Title, ach.Description, dimStyle.Render(when))
		} else {
			out += dimStyle.Render(fmt.Sprintf("  %-16s %s", ach.Title, ach.Description)) + "\n"
		}
	}
	out += "[d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderDuplicates() string {
	title := titleStyle.Render("Possible Duplicates")
	if len(a.duplicates) == 0 {
		return title + "\nNo candidate pairs.\n[u] Rescan  [d] Dashboard  [q] Quit\n" + a.status
	}
	pair := a.duplicates[a.dupCursor]
	out := fmt.Sprintf("%s\nPair %d of %d  Similarity: %.2f\n", title, a.dupCursor+1, len(a.duplicates), pair.Similarity)
	for _, t := range []ledger.Transaction{pair.A, pair.B} {
		out += fmt.Sprintf("  %s  %-30s  %s  %s\n",
			t.Date.In(a.loc).Format(a.dateFormat), t.Note, a.money(t.Amount), t.CategoryName)
	}
	out += "Review and delete one from the transactions view if it is a double entry.\n"
	out += "[u] Rescan  [d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
