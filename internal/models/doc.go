// Package models defines the bill data model shared by the calculator, the session
// layer and the stores.
//
// # Models
//
//   - BillData: the full snapshot of one bill (title, date, participants, expenses)
//   - Participant: a person taking part in the bill
//   - Expense: something one participant paid for, split among several participants
//   - ExpenseSplit: one participant's share of one expense
//   - Settlement: a derived payment from a debtor to a creditor
//
// # Design Principles
//
// 1. **Opaque ids**: participants and expenses are referenced by id strings, never by pointer
// 2. **Exact money**: amounts are decimal.Decimal values rounded to two places
// 3. **Snapshots**: a BillData is a plain value; the session layer owns mutation
// 4. **Stable JSON**: field names match the persisted snapshot format
package models
