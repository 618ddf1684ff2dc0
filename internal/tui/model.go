package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvoss/gpacalc/internal/entitlement"
	"github.com/nvoss/gpacalc/internal/gpa"
	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/report"
	"github.com/nvoss/gpacalc/internal/scale"
	"github.com/nvoss/gpacalc/internal/store"
)

const (
	tabOverview = iota
	tabCourses
	tabPrediction
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	store       *store.Store
	gate        *entitlement.Gate
	profile     model.Profile
	scale       scale.Scale
	multipliers scale.Multipliers

	semesters []model.Semester
	standing  model.Standing
	expected  []model.PredictionCourse
	premium   bool
	errMsg    string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	courseTable table.Model

	width  int
	height int
}

// NewModel constructs a dashboard model and loads its first snapshot.
func NewModel(st *store.Store, gate *entitlement.Gate, profile model.Profile, sc scale.Scale, m scale.Multipliers) *Model {
	mdl := &Model{
		store:       st,
		gate:        gate,
		profile:     profile,
		scale:       sc,
		multipliers: m,
		tabs:        []string{"Overview", "Courses", "Prediction"},
	}
	mdl.initViewports()
	mdl.initCourseTable()
	mdl.refresh()
	return mdl
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabCourses {
			m.courseTable.Focus()
		} else {
			m.courseTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refresh()
			m.renderTabContents()
			return m, nil
		default:
			if m.activeTab == tabCourses {
				var cmd tea.Cmd
				m.courseTable, cmd = m.courseTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.activeTab == tabCourses {
		b.WriteString(m.courseTable.View())
	} else {
		b.WriteString(m.viewports[m.activeTab].View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) refresh() {
	ctx := context.Background()
	m.errMsg = ""

	premium, err := m.gate.Premium(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.premium = premium

	semesters, err := m.store.ListSemesters(ctx, m.profile.ID, m.scale)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	// The free tier tracks a single semester.
	if !premium && len(semesters) > 1 {
		semesters = semesters[:1]
	}
	m.semesters = semesters

	standing, err := m.store.GetStanding(ctx, m.profile.ID, m.scale)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.standing = standing

	expected, err := m.store.ListPredictionCourses(ctx, m.profile.ID, m.scale)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.expected = expected

	m.refreshCourseTable()
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initCourseTable() {
	m.courseTable = table.New(
		table.WithColumns(courseColumns(0)),
		table.WithFocused(false),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color(accentColor))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0"))
	m.courseTable.SetStyles(styles)
}

func courseColumns(width int) []table.Column {
	nameWidth := width - 34
	if nameWidth < 12 {
		nameWidth = 12
	}
	return []table.Column{
		{Title: "Semester", Width: 12},
		{Title: "Course", Width: nameWidth},
		{Title: "Grade", Width: 6},
		{Title: "Credits", Width: 8},
		{Title: "Weight", Width: 8},
	}
}

func (m *Model) refreshCourseTable() {
	var rows []table.Row
	for _, sem := range m.semesters {
		for _, c := range sem.Courses {
			weight := ""
			if c.Weighted {
				weight = string(c.WeightType)
			}
			rows = append(rows, table.Row{
				sem.Name,
				c.Name,
				c.Grade,
				fmt.Sprintf("%g", c.Credits),
				weight,
			})
		}
	}
	m.courseTable.SetRows(rows)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.courseTable.SetColumns(courseColumns(m.width))
	m.courseTable.SetWidth(m.width)
	m.courseTable.SetHeight(bodyHeight)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

func (m *Model) renderTabContents() {
	m.viewports[tabOverview].SetContent(m.renderOverview())
	m.viewports[tabPrediction].SetContent(m.renderPrediction())
}

func (m *Model) renderHeader() string {
	items := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			items = append(items, activeNavStyle.Render(tab))
		} else {
			items = append(items, inactiveNavStyle.Render(tab))
		}
	}
	nav := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	title := headerStyle.Render(fmt.Sprintf("gpacalc · %s · %s scale", m.profile.Name, m.scale))
	return nav + "\n" + title
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render("←/→ switch tab · r refresh · q quit")
}

func (m *Model) renderOverview() string {
	flat := gpa.Flatten(m.semesters)

	var current []model.Course
	var currentName string
	if len(m.semesters) > 0 {
		latest := m.semesters[len(m.semesters)-1]
		current = latest.Courses
		currentName = latest.Name
	}

	cards := []string{
		renderCard("Current GPA",
			report.DisplayGPA(current, m.scale, false, m.multipliers)),
	}
	if m.premium {
		cards = append(cards,
			renderCard("Cumulative GPA",
				report.DisplayGPA(flat, m.scale, false, m.multipliers)),
			renderCard("Weighted GPA",
				report.DisplayGPA(flat, m.scale, true, m.multipliers)),
		)
	}
	cards = append(cards, renderCard("Credits", fmt.Sprintf("%g", gpa.TotalCredits(flat))))

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")
	if currentName != "" {
		b.WriteString(headerStyle.Render("Current semester: " + currentName))
		b.WriteString("\n\n")
	}
	if m.premium {
		var buf bytes.Buffer
		if err := report.RenderSummary(&buf, m.semesters, false, m.multipliers); err == nil {
			b.WriteString(buf.String())
		}
	} else {
		b.WriteString(lockedStyle.Render("Cumulative tracking, weighted GPA, prediction, and export require premium. Run: gpacalc upgrade"))
	}
	return b.String()
}

func (m *Model) renderPrediction() string {
	if !m.premium {
		return lockedStyle.Render("Prediction requires premium. Run: gpacalc upgrade")
	}
	var buf bytes.Buffer
	if err := report.RenderProjection(&buf, m.standing, m.expected, m.scale); err != nil {
		return errorStyle.Render(err.Error())
	}
	return buf.String()
}

func renderCard(title, value string) string {
	content := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}
