package domain

// Kind identifies a category of Bexio business object. Each kind has its own
// endpoint family and completion rules.
type Kind string

const (
	KindContact          Kind = "contact"
	KindInvoice          Kind = "invoice"
	KindQuote            Kind = "quote"
	KindOrder            Kind = "order"
	KindProject          Kind = "project"
	KindItem             Kind = "item"
	KindTimesheet        Kind = "timesheet"
	KindTimesheetStatus  Kind = "timesheet_status"
	KindManualEntry      Kind = "manual_entry"
	KindClientService    Kind = "client_service"
	KindBusinessActivity Kind = "business_activity"
	KindCalendarYear     Kind = "calendar_year"
	KindBusinessYear     Kind = "business_year"
	KindCurrency         Kind = "currency"
	KindAccount          Kind = "account"
	KindAccountGroup     Kind = "account_group"
	KindTax              Kind = "tax"
	KindVatPeriod        Kind = "vat_period"
)

// Action identifies what a tool invocation does to a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionGet    Action = "get"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
)

// Operation is one tool invocation against a resource kind. ID is only
// meaningful for get/update/delete.
type Operation struct {
	Kind    Kind
	Action  Action
	ID      int
	Payload Payload
}

// Record is a single remote object as returned by the API. Values carry
// whatever types encoding/json produced.
type Record = map[string]any
