package services

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/orgstock/inventory-api/internal/models"
)

// seedReportData populates one row of every entity a report can cover.
func (env testEnv) seedReportData(t *testing.T) *models.InventoryItem {
	t.Helper()

	category, room, condition := env.seedItemRefs(t)

	_, err := env.userService.Create(CreateUserInput{
		Username:    "reporter",
		Password:    "supersecret",
		Email:       "reporter@example.org",
		FullName:    "Report Er",
		PhoneNumber: "+1-555-0001",
	})
	require.NoError(t, err)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	minQty := 5
	_, err = env.consumableService.Create(CreateConsumableInput{
		Name:        "Ethernet Cable",
		Quantity:    1,
		MinQuantity: &minQty,
	})
	require.NoError(t, err)

	return item
}

func reportRows(t *testing.T, data []byte) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	return rows
}

func TestReportService_Generate_AllTypes(t *testing.T) {
	env := setupTestEnv(t)
	env.seedReportData(t)

	cases := []struct {
		reportType ReportType
		title      string
		headers    []string
	}{
		{ReportUsers, "Users Report",
			[]string{"ID", "Username", "Email", "Full Name", "Phone Number", "Admin", "Active", "Registered At"}},
		{ReportRooms, "Rooms Report",
			[]string{"ID", "Name", "Short Name"}},
		{ReportCategories, "Inventory Categories Report",
			[]string{"ID", "Name", "Short Name", "Description"}},
		{ReportItems, "Inventory Items Report",
			[]string{"ID", "Inventory Number", "Name", "Category", "Condition", "Room", "Assigned To", "Purchase Date", "Purchase Price"}},
		{ReportConsumables, "Consumables Report",
			[]string{"ID", "Name", "Quantity", "Min Quantity", "Unit", "Low Stock"}},
		{ReportLogs, "Logs Report",
			[]string{"ID", "Severity", "Description", "Created At", "Related Entity"}},
		{ReportLowStock, "Low Stock Report",
			[]string{"ID", "Name", "Quantity", "Min Quantity", "Unit", "Low Stock"}},
	}

	filenamePattern := regexp.MustCompile(`^[a-z_]+_\d{8}_\d{6}\.xlsx$`)

	for _, tc := range cases {
		t.Run(string(tc.reportType), func(t *testing.T) {
			data, filename, err := env.reportService.Generate(tc.reportType, "")
			require.NoError(t, err)
			require.Regexp(t, filenamePattern, filename)

			rows := reportRows(t, data)
			require.GreaterOrEqual(t, len(rows), 5, "expected title, stamp, header and at least one data row")
			require.Equal(t, tc.title, rows[0][0])
			require.Equal(t, tc.headers, rows[3])
		})
	}
}

func TestReportService_Generate_ItemsByCondition(t *testing.T) {
	env := setupTestEnv(t)
	item := env.seedReportData(t)

	data, _, err := env.reportService.Generate(ReportItemsByCondition, models.ConditionNormal)
	require.NoError(t, err)

	rows := reportRows(t, data)
	require.Len(t, rows, 5)
	require.Equal(t, item.Number, rows[4][1])
}

func TestReportService_Generate_ItemsByConditionErrors(t *testing.T) {
	env := setupTestEnv(t)
	env.seedReportData(t)

	_, _, err := env.reportService.Generate(ReportItemsByCondition, "")
	require.ErrorIs(t, err, ErrReportNeedsCondition)

	_, _, err = env.reportService.Generate(ReportItemsByCondition, "NO_SUCH_CONDITION")
	require.ErrorIs(t, err, ErrConditionNotFound)
}

func TestReportService_Generate_UnknownType(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.reportService.Generate(ReportType("quarterly"), "")
	require.ErrorIs(t, err, ErrUnknownReportType)
}

func TestReportService_Generate_LowStockOnlyListsShortItems(t *testing.T) {
	env := setupTestEnv(t)
	env.seedReportData(t)

	_, err := env.consumableService.Create(CreateConsumableInput{
		Name:     "HDMI Cable",
		Quantity: 50,
	})
	require.NoError(t, err)

	data, _, err := env.reportService.Generate(ReportLowStock, "")
	require.NoError(t, err)

	rows := reportRows(t, data)
	require.Len(t, rows, 5)
	require.Equal(t, "Ethernet Cable", rows[4][1])
	require.Equal(t, "Yes", rows[4][5])
}
