package common

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1120
	imageHeight     = 640
	headerHeight    = 60
	leftLabelsWidth = 60
	dayPaddingX     = 6
	minSlotHeight   = 10.0
	totalDays       = 7
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 220}
	hourLabelColor  = color.RGBA{110, 115, 120, 200}
	hourLineColor   = color.NRGBA{150, 150, 150, 255}
	evenDayColor    = color.NRGBA{240, 240, 240, 255}
	oddDayColor     = color.NRGBA{226, 226, 226, 255}
	slotOpenColor   = color.RGBA{133, 193, 85, 220}
	slotClosedColor = color.RGBA{158, 158, 158, 200}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
)

type hourRange struct {
	min int
	max int
}

// GenerateAvailabilityImage рисует недельную сетку доступности репетитора.
// Колонки — дни недели начиная с воскресенья, блоки — окна доступности.
func GenerateAvailabilityImage(slots []model.Availability) ([]byte, error) {
	grouped := service.GroupByDay(slots)
	hours := calculateHourRange(slots)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	gridHeight := float64(imageHeight - headerHeight - 20)
	cellHeight := gridHeight / float64(hours.max-hours.min)
	dayWidth := (imageWidth - leftLabelsWidth) / totalDays

	drawHourLabels(dc, hours, cellHeight)

	for day := 0; day < totalDays; day++ {
		x := float64(leftLabelsWidth + day*dayWidth)
		drawDayColumn(dc, day, x, float64(dayWidth), hours, cellHeight)
		for _, slot := range grouped[day] {
			drawSlot(dc, slot, x, float64(dayWidth), hours, cellHeight)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode availability image: %w", err)
	}
	return buf.Bytes(), nil
}

// calculateHourRange подбирает диапазон часов под имеющиеся окна
func calculateHourRange(slots []model.Availability) hourRange {
	hours := hourRange{min: defaultMinHour, max: defaultMaxHour}
	for _, s := range slots {
		if h, ok := parseHour(s.StartTime); ok && h < hours.min {
			hours.min = h
		}
		if h, ok := parseHour(s.EndTime); ok && h+1 > hours.max {
			hours.max = h + 1
		}
	}
	if hours.max <= hours.min {
		hours.max = hours.min + 1
	}
	return hours
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for h := hours.min; h <= hours.max; h++ {
		y := float64(headerHeight) + float64(h-hours.min)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), float64(leftLabelsWidth)-8, y, 1, 0.5)
	}
}

func drawDayColumn(dc *gg.Context, day int, x, dayWidth float64, hours hourRange, cellHeight float64) {
	if day%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	top := float64(headerHeight)
	height := float64(hours.max-hours.min) * cellHeight
	dc.DrawRectangle(x, top, dayWidth, height)
	dc.Fill()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(weekdayLabel(day), x+dayWidth/2, top-20, 0.5, 0.5)

	dc.SetColor(hourLineColor)
	dc.SetLineWidth(0.5)
	for h := hours.min; h <= hours.max; h++ {
		y := top + float64(h-hours.min)*cellHeight
		dc.DrawLine(x, y, x+dayWidth, y)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, slot model.Availability, x, dayWidth float64, hours hourRange, cellHeight float64) {
	start, ok1 := parseClock(slot.StartTime)
	end, ok2 := parseClock(slot.EndTime)
	if !ok1 || !ok2 || end <= start {
		return
	}

	top := float64(headerHeight) + (start-float64(hours.min))*cellHeight
	height := (end - start) * cellHeight
	if height < minSlotHeight {
		height = minSlotHeight
	}

	if slot.IsAvailable {
		dc.SetColor(slotOpenColor)
	} else {
		dc.SetColor(slotClosedColor)
	}
	dc.DrawRoundedRectangle(x+dayPaddingX, top, dayWidth-2*dayPaddingX, height, 5)
	dc.Fill()

	if height >= 16 {
		dc.SetColor(slotTextColor)
		label := slot.StartTime + "-" + slot.EndTime
		dc.DrawStringAnchored(label, x+dayWidth/2, top+height/2, 0.5, 0.5)
	}
}

// parseClock переводит "HH:MM" в часы с дробной частью
func parseClock(s string) (float64, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

func parseHour(s string) (int, bool) {
	clock, ok := parseClock(s)
	if !ok {
		return 0, false
	}
	return int(clock), true
}

func weekdayLabel(day int) string {
	// basicfont не содержит кириллицу, подписи дней — латиницей
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if day >= 0 && day < len(names) {
		return names[day]
	}
	return "?"
}
