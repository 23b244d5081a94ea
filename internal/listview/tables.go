package listview

import "homecare-admin/internal/domain"

func text(key, label, expr string, sortable bool) Column {
	return Column{Key: key, Label: label, Type: ColumnText, Expr: expr, Sortable: sortable}
}

func date(key, label, expr string, sortable bool) Column {
	return Column{Key: key, Label: label, Type: ColumnDate, Expr: expr, Sortable: sortable}
}

func numeric(key, label, expr string, sortable bool) Column {
	return Column{Key: key, Label: label, Type: ColumnNumeric, Expr: expr, Sortable: sortable}
}

func boolean(key, label, expr string, sortable bool, trueLabel, falseLabel string) Column {
	return Column{Key: key, Label: label, Type: ColumnBoolean, Expr: expr, Sortable: sortable, TrueLabel: trueLabel, FalseLabel: falseLabel}
}

// count 聚合计数列（随行返回，不作为可见列）
func count(key, expr string) Column {
	return Column{Key: key, Label: key, Type: ColumnNumeric, Expr: expr, Hidden: true}
}

func textFilter(key, label, expr string) Filter {
	return Filter{Key: key, Label: label, Type: FilterText, Expr: expr}
}

func dateFilter(key, label, expr string) Filter {
	return Filter{Key: key, Label: label, Type: FilterDate, Expr: expr, Nullable: true}
}

func activeSetFilter(expr string) Filter {
	return Filter{Key: "is_active", Label: "Status", Type: FilterSet, Expr: expr, Options: []Option{
		{Value: "1", Label: "Active", Arg: true},
		{Value: "0", Label: "Inactive", Arg: false},
	}}
}

func exportAll() *Export {
	return &Export{LimitToFilteredRows: true, LimitToSelectedRows: true}
}

func AgenciesTable() *Table {
	return &Table{
		Name:        "agencies",
		Path:        "/agencies",
		From:        "agencies",
		IDExpr:      "agencies.id",
		DefaultSort: "name",
		Search:      []string{"agencies.name", "agencies.email", "agencies.contact_person"},
		Columns: []Column{
			text("name", "Agency Name", "agencies.name", true),
			text("contact_person", "Contact Person", "agencies.contact_person", true),
			text("email", "Email", "agencies.email", true),
			text("phone", "Phone", "agencies.phone", false),
			text("city", "City", "agencies.city", false),
			text("state", "State", "agencies.state", false),
			boolean("is_active", "Active", "agencies.is_active", false, "Active", "Inactive"),
			date("created_at", "Created", "agencies.created_at", true),
			count("services_count", "(SELECT COUNT(*) FROM services WHERE services.agency_id = agencies.id)"),
			count("case_managers_count", "(SELECT COUNT(*) FROM case_managers WHERE case_managers.agency_id = agencies.id)"),
		},
		Filters: []Filter{
			textFilter("name", "Agency Name", "agencies.name"),
			textFilter("contact_person", "Contact Person", "agencies.contact_person"),
			textFilter("email", "Email", "agencies.email"),
			textFilter("phone", "Phone", "agencies.phone"),
			textFilter("city", "City", "agencies.city"),
			textFilter("state", "State", "agencies.state"),
			activeSetFilter("agencies.is_active"),
			dateFilter("created_at", "Created At", "agencies.created_at"),
		},
		Actions: StandardActions("Agency"),
		Export:  exportAll(),
	}
}

func CaseManagersTable() *Table {
	return &Table{
		Name:        "case-managers",
		Path:        "/case-managers",
		From:        "case_managers LEFT JOIN agencies ON agencies.id = case_managers.agency_id",
		IDExpr:      "case_managers.id",
		DefaultSort: "name",
		Search:      []string{"case_managers.name", "case_managers.email", "case_managers.phone"},
		Columns: []Column{
			text("name", "Full Name", "case_managers.name", true),
			text("email", "Email", "case_managers.email", true),
			text("phone", "Phone", "case_managers.phone", true),
			text("agency.name", "Agency", "agencies.name", true),
			date("created_at", "Created", "case_managers.created_at", true),
			count("participants_count", "(SELECT COUNT(*) FROM participants WHERE participants.case_manager_id = case_managers.id)"),
		},
		Filters: []Filter{
			textFilter("name", "Full Name", "case_managers.name"),
			textFilter("email", "Email", "case_managers.email"),
			textFilter("phone", "Phone", "case_managers.phone"),
			dateFilter("created_at", "Created At", "case_managers.created_at"),
		},
		Actions: StandardActions("Case Manager"),
		Export:  exportAll(),
	}
}

func ParticipantsTable() *Table {
	return &Table{
		Name:        "participants",
		Path:        "/participants",
		From:        "participants LEFT JOIN case_managers ON case_managers.id = participants.case_manager_id",
		IDExpr:      "participants.id",
		DefaultSort: "name",
		Search:      []string{"participants.name", "participants.medicaid_id", "participants.primary_phone"},
		Columns: []Column{
			text("name", "Full Name", "participants.name", true),
			text("medicaid_id", "Medicaid ID", "participants.medicaid_id", true),
			date("dob", "Date of Birth", "participants.dob", true),
			text("primary_phone", "Primary Phone", "participants.primary_phone", false),
			text("community", "Community", "participants.community", false),
			boolean("is_active", "Active", "participants.is_active", true, "", ""),
			text("case_manager.name", "Case Manager", "case_managers.name", true),
			date("created_at", "Created", "participants.created_at", true),
		},
		Filters: []Filter{
			textFilter("name", "Full Name", "participants.name"),
			textFilter("medicaid_id", "Medicaid ID", "participants.medicaid_id"),
			textFilter("primary_phone", "Primary Phone", "participants.primary_phone"),
			textFilter("community", "Community", "participants.community"),
			{Key: "is_active", Label: "Active", Type: FilterBoolean, Expr: "participants.is_active"},
			dateFilter("created_at", "Created At", "participants.created_at"),
		},
		Actions: StandardActions("Participant"),
		Export:  exportAll(),
	}
}

func CaregiversTable() *Table {
	return &Table{
		Name:        "caregivers",
		Path:        "/caregivers",
		From:        "caregivers",
		IDExpr:      "caregivers.id",
		DefaultSort: "name",
		Search:      []string{"caregivers.name", "caregivers.email"},
		Columns: []Column{
			text("name", "Full Name", "caregivers.name", true),
			text("email", "Email", "caregivers.email", true),
			text("phone", "Phone Number", "caregivers.phone", false),
			numeric("available_hours", "Available Hours", "caregivers.available_hours", false),
			boolean("is_active", "Active", "caregivers.is_active", false, "Active", "Inactive"),
			date("created_at", "Created", "caregivers.created_at", true),
			count("services_count", "(SELECT COUNT(*) FROM service_caregiver WHERE service_caregiver.caregiver_id = caregivers.id)"),
		},
		Filters: []Filter{
			textFilter("name", "Full Name", "caregivers.name"),
			textFilter("email", "Email", "caregivers.email"),
			textFilter("phone", "Phone Number", "caregivers.phone"),
			activeSetFilter("caregivers.is_active"),
			dateFilter("created_at", "Created At", "caregivers.created_at"),
		},
		Actions: StandardActions("Caregiver"),
		Export:  exportAll(),
	}
}

func ServicesTable() *Table {
	typeOptions := make([]Option, 0, len(domain.ServiceTypes))
	for _, st := range domain.ServiceTypes {
		typeOptions = append(typeOptions, Option{Value: string(st), Label: string(st)})
	}
	statusOptions := []Option{
		{Value: string(domain.ServiceStatusPending), Label: "Pending"},
		{Value: string(domain.ServiceStatusApproved), Label: "Approved"},
		{Value: string(domain.ServiceStatusActive), Label: "Active"},
		{Value: string(domain.ServiceStatusExpired), Label: "Expired"},
	}
	return &Table{
		Name: "services",
		Path: "/services",
		From: `services
			JOIN participants ON participants.id = services.participant_id
			JOIN agencies ON agencies.id = services.agency_id`,
		IDExpr:      "services.id",
		DefaultSort: "created_at",
		Search:      []string{"services.type", "services.status"},
		Columns: []Column{
			text("type", "Service Type", "services.type", true),
			text("participant.name", "Participant", "participants.name", true),
			text("agency.name", "Agency", "agencies.name", true),
			numeric("weekly_hours", domain.HoursLabel, "services.weekly_hours", true),
			numeric("weekly_units", domain.UnitsLabel, "services.weekly_units", true),
			text("status", "Status", "services.status", true),
			date("start_date", "Start Date", "services.start_date", true),
			date("end_date", "End Date", "services.end_date", true),
			date("created_at", "Created", "services.created_at", true),
			count("caregivers_count", "(SELECT COUNT(*) FROM service_caregiver WHERE service_caregiver.service_id = services.id)"),
		},
		Filters: []Filter{
			{Key: "type", Label: "Service Type", Type: FilterSet, Expr: "services.type", Options: typeOptions},
			{Key: "status", Label: "Status", Type: FilterSet, Expr: "services.status", Options: statusOptions},
			dateFilter("start_date", "Start Date", "services.start_date"),
			dateFilter("end_date", "End Date", "services.end_date"),
			dateFilter("created_at", "Created At", "services.created_at"),
			{Key: "weekly_hours", Label: domain.HoursLabel, Type: FilterNumeric, Expr: "services.weekly_hours", Nullable: true},
		},
		Actions: StandardActions("Service"),
		Export:  exportAll(),
	}
}

func UsersTable() *Table {
	return &Table{
		Name:        "users",
		Path:        "/users",
		From:        "users",
		IDExpr:      "users.id",
		DefaultSort: "name",
		Search:      []string{"users.name", "users.email"},
		Columns: []Column{
			text("name", "Full Name", "users.name", true),
			text("email", "Email", "users.email", true),
			date("email_verified_at", "Email Verified", "users.email_verified_at", false),
			date("created_at", "Created", "users.created_at", true),
		},
		Filters: []Filter{
			textFilter("name", "Full Name", "users.name"),
			textFilter("email", "Email", "users.email"),
			dateFilter("email_verified_at", "Email Verified At", "users.email_verified_at"),
			dateFilter("created_at", "Created At", "users.created_at"),
		},
		Actions: StandardActions("User"),
		Export:  exportAll(),
	}
}
