package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"StockLens/internal/domain/models"
	"StockLens/pkg/util"
)

const (
	SheetHistory  = "Historical Data"
	SheetMetadata = "Metadata"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	exportTimeLayout = "2006-01-02 15:04:05"
	headerColor      = "D7E4BC"
)

// HistoryColumns is the header row of the history sheet.
var HistoryColumns = []string{"Date", "Open", "High", "Low", "Close", "Change %", "Volume", "Price Change", "Price Change %"}

// Metadata keys in sheet order.
const (
	MetaSymbol      = "Symbol"
	MetaCompany     = "Company Name"
	MetaMarket      = "Market"
	MetaCurrency    = "Currency"
	MetaRange       = "Requested Range"
	MetaInterval    = "Bar Interval"
	MetaTimezone    = "Timezone"
	MetaExportDate  = "Data Export Date"
	MetaRecordCount = "Total Records"
)

// Workbook is the parsed content of an exported file.
type Workbook struct {
	Bars     models.Series
	Metadata map[string]string
}

// Filename returns "<SYMBOL>_historical_data_<YYYYMMDD>.xlsx".
func Filename(symbol string, now time.Time) string {
	return fmt.Sprintf("%s_historical_data_%s.xlsx", strings.ToUpper(symbol), util.FormatStamp(now))
}

// Build writes bars and request metadata to an XLSX document. Prices are
// stored at full precision and displayed with two decimals. Intraday bars
// keep their time of day in the exchange timezone.
func Build(bars models.Series, ticker models.TickerSymbol, rng, interval, companyName string, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetHistory); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetMetadata); err != nil {
		return nil, fmt.Errorf("create metadata sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	twoDP, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("number style: %w", err)
	}
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("volume style: %w", err)
	}

	for i, name := range HistoryColumns {
		if err := setCell(f, SheetHistory, i+1, 1, name); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(HistoryColumns), 1)
	if err := f.SetCellStyle(SheetHistory, "A1", last, header); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	intraday := util.IsIntraday(interval)
	tz := time.UTC.String()
	if len(bars) > 0 {
		tz = bars[0].Date.Location().String()
	}
	for i, b := range bars {
		row := i + 2
		values := []any{util.FormatBarTime(b.Date, intraday), b.Open, b.High, b.Low, b.Close, nil, b.Volume, nil, nil}
		if i > 0 && bars[i-1].Close != 0 {
			prev := bars[i-1].Close
			pct := (b.Close - prev) / prev * 100
			values[5] = roundTo(pct, 2)
			values[7] = b.Close - prev
			values[8] = pct
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			if err := setCell(f, SheetHistory, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}
	if len(bars) > 0 {
		end := len(bars) + 1
		for _, rng := range [][2]string{{"B", "F"}, {"H", "I"}} {
			if err := f.SetCellStyle(SheetHistory, fmt.Sprintf("%s2", rng[0]), fmt.Sprintf("%s%d", rng[1], end), twoDP); err != nil {
				return nil, fmt.Errorf("style prices: %w", err)
			}
		}
		if err := f.SetCellStyle(SheetHistory, "G2", fmt.Sprintf("G%d", end), thousands); err != nil {
			return nil, fmt.Errorf("style volume: %w", err)
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{{"A", "A", 17}, {"B", "F", 10}, {"G", "G", 15}, {"H", "I", 12}}
	for _, w := range widths {
		if err := f.SetColWidth(SheetHistory, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	company := companyName
	if company == "" {
		company = "N/A"
	}
	meta := [][2]any{
		{"Property", "Value"},
		{MetaSymbol, ticker.Normalized},
		{MetaCompany, company},
		{MetaMarket, ticker.MarketName},
		{MetaCurrency, ticker.Currency},
		{MetaRange, rng},
		{MetaInterval, interval},
		{MetaTimezone, tz},
		{MetaExportDate, now.Format(exportTimeLayout)},
		{MetaRecordCount, len(bars)},
	}
	for i, kv := range meta {
		for j, v := range kv {
			if err := setCell(f, SheetMetadata, j+1, i+1, v); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetCellStyle(SheetMetadata, "A1", "B1", header); err != nil {
		return nil, fmt.Errorf("style metadata header: %w", err)
	}
	if err := f.SetColWidth(SheetMetadata, "A", "B", 20); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads a workbook produced by Build.
func Parse(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{Bars: models.Series{}, Metadata: map[string]string{}}
	meta, err := f.GetRows(SheetMetadata, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SheetMetadata, err)
	}
	for i, row := range meta {
		if i == 0 || len(row) < 2 {
			continue
		}
		wb.Metadata[row[0]] = row[1]
	}
	loc := time.UTC
	if name := wb.Metadata[MetaTimezone]; name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}

	rows, err := f.GetRows(SheetHistory, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SheetHistory, err)
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		bar, err := parseBar(row, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		wb.Bars = append(wb.Bars, bar)
	}
	return wb, nil
}

func parseBar(row []string, loc *time.Location) (models.PriceBar, error) {
	if len(row) < 7 {
		return models.PriceBar{}, fmt.Errorf("expected at least 7 cells, got %d", len(row))
	}
	date, err := util.ParseBarTime(row[0], loc)
	if err != nil {
		return models.PriceBar{}, fmt.Errorf("date %q: %w", row[0], err)
	}
	nums := make([]float64, 0, 5)
	for _, idx := range []int{1, 2, 3, 4, 6} {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return models.PriceBar{}, fmt.Errorf("%s %q: %w", HistoryColumns[idx], row[idx], err)
		}
		nums = append(nums, v)
	}
	return models.PriceBar{Date: date, Open: nums[0], High: nums[1], Low: nums[2], Close: nums[3], Volume: nums[4]}, nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
