package report

// Sheet names
const (
	SheetDays   = "Days"
	SheetStock  = "Stock"
	SheetOrders = "Orders"
)

var dayHeaders = []string{"Day", "Date", "Payroll", "Daily Profit", "Balance", "Shortfall", "Produced", "Crafted", "Open Orders", "Overdue Orders"}

var stockHeaders = []string{"Kind", "Name", "Quantity", "Unit"}

var orderHeaders = []string{"ID", "Product", "Quantity", "Completed Qty", "Unit Price", "Deadline", "Status"}

// Stock kinds
const (
	KindMaterial = "material"
	KindProduct  = "product"
)

// Order states
const (
	OrderOpen      = "open"
	OrderOverdue   = "overdue"
	OrderCompleted = "completed"
)

// DateLayout is used for dates written into cells
const DateLayout = "2006-01-02 15:04"

const headerFill = "#D9E1F2"
