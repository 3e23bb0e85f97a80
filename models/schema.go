package models

import "juris_control_go/services/tablestore"

// Schemas maps every table to its header order.
func Schemas() map[string][]string {
	return map[string][]string{
		tablestore.TableClients:      ClientColumns,
		tablestore.TableCases:        CaseColumns,
		tablestore.TableCaseHistory:  CaseHistoryColumns,
		tablestore.TableEvents:       ScheduleEventColumns,
		tablestore.TableInstallments: InstallmentColumns,
	}
}
