// Package income implements the order/settlement reporting tool: it joins a
// completed-orders export against a settlement-income export, prices each
// product group with the persisted cost ledger, and splits the resulting
// profit 60/40 between the partners.
//
// This is deliberately simpler than the analytics engine: a groupby plus
// arithmetic, with no scoring or clustering involved.
package income
