package models

// AllModels lists every model, in dependency order, for AutoMigrate in tests
// and the sqlite driver
func AllModels() []any {
	return []any{
		&UserModel{},
		&OwnerModel{},
		&PropertyModel{},
		&UnitModel{},
		&FundReferenceModel{},
		&VoucherSeriesModel{},
		&LedgerEntryModel{},
		&DepartmentModel{},
		&PositionModel{},
		&ShiftScheduleModel{},
		&EmployeeModel{},
		&LeaveModel{},
		&TardinessEntryModel{},
		&ChecklistTemplateModel{},
		&ChecklistTemplateTaskModel{},
		&ClearanceModel{},
		&ClearanceTaskModel{},
		&ActivityLogModel{},
	}
}
