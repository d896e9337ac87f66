package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable calculator input. A slider with
// Options cycles through them instead of moving along a numeric range.
type ParameterSlider struct {
	Field       string // dotted input path, e.g. "compute.instances"
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Decimals    int
	Prefix      string // e.g. "₹"
	Unit        string // e.g. "%", " years"
	Options     []string
	Selected    int
	Width       int // Total width of slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new numeric slider
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Label:    label,
		Value:    value,
		Min:      min,
		Max:      max,
		Step:     step,
		Decimals: decimalsOf(step),
		Width:    30,
	}
}

// NewChoiceSlider creates a slider over a fixed list of options.
func NewChoiceSlider(label string, options []string, selected string) *ParameterSlider {
	p := &ParameterSlider{
		Label:   label,
		Options: options,
		Width:   30,
	}
	for i, o := range options {
		if o == selected {
			p.Selected = i
			break
		}
	}
	return p
}

// WithField sets the input path the slider writes to
func (p *ParameterSlider) WithField(field string) *ParameterSlider {
	p.Field = field
	return p
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPrefix sets a value prefix such as a currency symbol
func (p *ParameterSlider) WithPrefix(prefix string) *ParameterSlider {
	p.Prefix = prefix
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// IsChoice reports whether the slider cycles through options.
func (p *ParameterSlider) IsChoice() bool {
	return len(p.Options) > 0
}

// Increment moves one step up, or to the next option.
func (p *ParameterSlider) Increment() {
	p.IncrementBy(1)
}

// Decrement moves one step down, or to the previous option.
func (p *ParameterSlider) Decrement() {
	p.IncrementBy(-1)
}

// IncrementBy moves n steps. Numeric values clamp to the range; options wrap.
func (p *ParameterSlider) IncrementBy(n int) {
	if p.IsChoice() {
		p.Selected = ((p.Selected+n)%len(p.Options) + len(p.Options)) % len(p.Options)
		return
	}
	p.SetValue(p.Value + float64(n)*p.Step)
}

// SetValue sets the value directly, clamping to min/max and rounding to the
// step's precision.
func (p *ParameterSlider) SetValue(value float64) {
	scale := math.Pow(10, float64(p.Decimals))
	value = math.Round(value*scale) / scale
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Percentage returns the value as a percentage of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.IsChoice() {
		if len(p.Options) < 2 {
			return 0
		}
		return float64(p.Selected) / float64(len(p.Options)-1)
	}
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// RawValue is the value as written into the calculator input.
func (p *ParameterSlider) RawValue() string {
	if p.IsChoice() {
		return p.Options[p.Selected]
	}
	return strconv.FormatFloat(p.Value, 'f', p.Decimals, 64)
}

// DisplayValue is the value with prefix, grouping and unit.
func (p *ParameterSlider) DisplayValue() string {
	if p.IsChoice() {
		return p.Options[p.Selected]
	}
	return p.display(p.Value)
}

func (p *ParameterSlider) display(v float64) string {
	return p.Prefix + humanize.CommafWithDigits(v, p.Decimals) + p.Unit
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	// Label
	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("\n")

	// Value display
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(valueStyle.Render(p.DisplayValue()))
	content.WriteString("\n")

	if p.IsChoice() {
		content.WriteString(p.renderOptions())
	} else {
		content.WriteString(p.renderSliderBar())

		rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		rangeText := fmt.Sprintf("%s  ─  %s", p.display(p.Min), p.display(p.Max))
		content.WriteString("\n")
		content.WriteString(rangeStyle.Render(rangeText))
	}

	// Description if present
	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	// Control hints if focused
	if p.IsFocused {
		content.WriteString("\n")
		hintStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorInfo).
			Italic(true)
		content.WriteString(hintStyle.Render("← → to adjust • ↑↓ to navigate"))
	}

	return content.String()
}

func (p *ParameterSlider) renderOptions() string {
	parts := make([]string, len(p.Options))
	for i, o := range p.Options {
		if i == p.Selected {
			parts[i] = tuistyles.SelectedItemStyle.Render("[" + o + "]")
		} else {
			parts[i] = tuistyles.SliderTrackStyle.Render(" " + o + " ")
		}
	}
	return strings.Join(parts, " ")
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	percentage := p.Percentage()
	filled := int(math.Round(float64(p.Width) * percentage))

	// Ensure we stay within bounds
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	var bar strings.Builder

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")

	return bar.String()
}

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle

	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	label := labelStyle.Render(p.Label + ":")
	value := valueStyle.Render(p.DisplayValue())
	if p.IsChoice() {
		return fmt.Sprintf("%s %s", label, value)
	}
	return fmt.Sprintf("%s %s %s", label, value, p.renderMiniSliderBar(10))
}

// renderMiniSliderBar creates a compact slider bar
func (p *ParameterSlider) renderMiniSliderBar(width int) string {
	filled := int(math.Round(float64(width-1) * p.Percentage()))

	var bar strings.Builder
	bar.WriteString("[")

	thumbStyle := tuistyles.SliderThumbStyle
	trackStyle := tuistyles.SliderTrackStyle

	for i := 0; i < width; i++ {
		switch {
		case i == filled:
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(trackStyle.Render("─"))
		}
	}

	bar.WriteString("]")
	return bar.String()
}

// decimalsOf counts the fractional digits of a step such as 0.05.
func decimalsOf(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
