package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
)

// ReportType selects the spreadsheet layout.
type ReportType string

const (
	ReportUsers            ReportType = "users"
	ReportRooms            ReportType = "rooms"
	ReportCategories       ReportType = "categories"
	ReportItems            ReportType = "items"
	ReportConsumables      ReportType = "consumables"
	ReportLogs             ReportType = "logs"
	ReportLowStock         ReportType = "low_stock"
	ReportItemsByCondition ReportType = "items_by_condition"
)

var (
	ErrUnknownReportType    = errors.New("unknown report type")
	ErrReportNeedsCondition = errors.New("condition parameter is required for the items_by_condition report")
)

// ReportService renders entity collections into downloadable spreadsheets
// with a fixed column layout per report type.
type ReportService struct {
	userRepo       repository.UserRepository
	roomRepo       repository.RoomRepository
	categoryRepo   repository.CategoryRepository
	conditionRepo  repository.ConditionRepository
	itemRepo       repository.ItemRepository
	consumableRepo repository.ConsumableRepository
	logRepo        repository.LogRepository
}

// NewReportService creates a new ReportService.
func NewReportService(
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	categoryRepo repository.CategoryRepository,
	conditionRepo repository.ConditionRepository,
	itemRepo repository.ItemRepository,
	consumableRepo repository.ConsumableRepository,
	logRepo repository.LogRepository,
) *ReportService {
	return &ReportService{
		userRepo:       userRepo,
		roomRepo:       roomRepo,
		categoryRepo:   categoryRepo,
		conditionRepo:  conditionRepo,
		itemRepo:       itemRepo,
		consumableRepo: consumableRepo,
		logRepo:        logRepo,
	}
}

// Generate builds the requested report and returns the workbook bytes and
// a timestamped filename.
func (s *ReportService) Generate(reportType ReportType, condition string) ([]byte, string, error) {
	var (
		title   string
		headers []string
		rows    [][]any
		err     error
	)

	switch reportType {
	case ReportUsers:
		title = "Users Report"
		headers = []string{"ID", "Username", "Email", "Full Name", "Phone Number", "Admin", "Active", "Registered At"}
		rows, err = s.userRows()
	case ReportRooms:
		title = "Rooms Report"
		headers = []string{"ID", "Name", "Short Name"}
		rows, err = s.roomRows()
	case ReportCategories:
		title = "Inventory Categories Report"
		headers = []string{"ID", "Name", "Short Name", "Description"}
		rows, err = s.categoryRows()
	case ReportItems:
		title = "Inventory Items Report"
		headers = itemHeaders()
		rows, err = s.itemRows(repository.ItemFilter{})
	case ReportConsumables:
		title = "Consumables Report"
		headers = consumableHeaders()
		rows, err = s.consumableRows(false)
	case ReportLogs:
		title = "Logs Report"
		headers = []string{"ID", "Severity", "Description", "Created At", "Related Entity"}
		rows, err = s.logRows()
	case ReportLowStock:
		title = "Low Stock Report"
		headers = consumableHeaders()
		rows, err = s.consumableRows(true)
	case ReportItemsByCondition:
		if condition == "" {
			return nil, "", ErrReportNeedsCondition
		}
		title = fmt.Sprintf("Inventory Items Report (%s)", condition)
		headers = itemHeaders()
		rows, err = s.itemRowsByCondition(condition)
	default:
		return nil, "", ErrUnknownReportType
	}
	if err != nil {
		return nil, "", err
	}

	data, err := renderWorkbook(title, headers, rows)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render report: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.xlsx", reportType, time.Now().Format("20060102_150405"))
	return data, filename, nil
}

func itemHeaders() []string {
	return []string{"ID", "Inventory Number", "Name", "Category", "Condition", "Room", "Assigned To", "Purchase Date", "Purchase Price"}
}

func consumableHeaders() []string {
	return []string{"ID", "Name", "Quantity", "Min Quantity", "Unit", "Low Stock"}
}

func (s *ReportService) userRows() ([][]any, error) {
	users, _, err := s.userRepo.List(0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{
			u.ID, u.Username, u.Email, u.FullName, u.PhoneNumber,
			yesNo(u.IsAdmin), yesNo(u.IsActive),
			u.RegisteredAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows, nil
}

func (s *ReportService) roomRows() ([][]any, error) {
	rooms, err := s.roomRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	rows := make([][]any, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []any{r.ID, r.Name, r.ShortName})
	}
	return rows, nil
}

func (s *ReportService) categoryRows() ([][]any, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	rows := make([][]any, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []any{c.ID, c.Name, c.ShortName, c.Description})
	}
	return rows, nil
}

func (s *ReportService) itemRows(filter repository.ItemFilter) ([][]any, error) {
	items, _, err := s.itemRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		roomName := ""
		if item.Room != nil {
			roomName = item.Room.Name
		}
		assignee := ""
		if item.AssignedUser != nil {
			assignee = item.AssignedUser.FullName
		}
		purchaseDate := ""
		if item.PurchaseDate != nil {
			purchaseDate = item.PurchaseDate.Format("2006-01-02")
		}
		price := ""
		if item.PurchasePrice != nil {
			price = item.PurchasePrice.StringFixed(2)
		}
		rows = append(rows, []any{
			item.ID, item.Number, item.Name, item.Category.Name,
			item.Condition.Name, roomName, assignee, purchaseDate, price,
		})
	}
	return rows, nil
}

func (s *ReportService) itemRowsByCondition(conditionName string) ([][]any, error) {
	condition, err := s.conditionRepo.FindByName(conditionName, true)
	if err != nil {
		return nil, ErrConditionNotFound
	}
	return s.itemRows(repository.ItemFilter{ConditionID: &condition.ID})
}

func (s *ReportService) consumableRows(lowStockOnly bool) ([][]any, error) {
	var (
		consumables []models.Consumable
		err         error
	)
	if lowStockOnly {
		consumables, err = s.consumableRepo.ListLowStock()
	} else {
		consumables, err = s.consumableRepo.List()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load consumables: %w", err)
	}

	rows := make([][]any, 0, len(consumables))
	for _, c := range consumables {
		rows = append(rows, []any{c.ID, c.Name, c.Quantity, c.MinQuantity, c.Unit, yesNo(c.IsLowStock())})
	}
	return rows, nil
}

func (s *ReportService) logRows() ([][]any, error) {
	logs, _, err := s.logRepo.List(repository.LogFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	rows := make([][]any, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []any{
			l.ID, l.Type.String(), l.Description,
			l.CreatedAt.Format("2006-01-02 15:04:05"), l.RelatedEntityLink,
		})
	}
	return rows, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// renderWorkbook lays a report out as a merged title row, a generated-at
// stamp, a styled header row and one row per record, with columns sized
// to their longest value.
func renderWorkbook(title string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	const headerRow = 4

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle); err != nil {
		return nil, err
	}
	stamp := fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05"))
	if err := f.SetCellValue(sheet, "A2", stamp); err != nil {
		return nil, err
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		widths[col] = len(header)
	}
	if err := f.SetCellStyle(sheet, "A4", fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
			if n := len(fmt.Sprint(value)); n > widths[col] {
				widths[col] = n
			}
		}
	}
	if len(rows) > 0 {
		lastCell := fmt.Sprintf("%s%d", lastCol, headerRow+len(rows))
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow+1), lastCell, cellStyle); err != nil {
			return nil, err
		}
	}

	for col := range headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		width := float64(widths[col]) + 2
		if width < 12 {
			width = 12
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
