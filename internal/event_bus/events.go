package event_bus

const (
	ExpenseCreated     EventType = "expense.created"
	ExpenseUpdated     EventType = "expense.updated"
	ExpenseDeleted     EventType = "expense.deleted"
	ExpensePaidToggled EventType = "expense.paid_toggled"

	IncomeCreated EventType = "income.created"
	IncomeUpdated EventType = "income.updated"
	IncomeDeleted EventType = "income.deleted"

	GoalCreated EventType = "goal.created"
	GoalUpdated EventType = "goal.updated"
	GoalDeleted EventType = "goal.deleted"
)

// TransactionEvents lists every event emitted by a change to an income or expense store.
var TransactionEvents = []EventType{
	ExpenseCreated, ExpenseUpdated, ExpenseDeleted, ExpensePaidToggled,
	IncomeCreated, IncomeUpdated, IncomeDeleted,
}

var GoalEvents = []EventType{GoalCreated, GoalUpdated, GoalDeleted}

// RecordChanged is the payload of every store mutation event.
type RecordChanged struct {
	Id int
}
