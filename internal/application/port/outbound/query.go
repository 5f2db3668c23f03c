package outbound

// Operator is a comparison understood by every repository.
type Operator string

const (
	OpEq   Operator = "="
	OpNe   Operator = "<>"
	OpLt   Operator = "<"
	OpGt   Operator = ">"
	OpLike Operator = "LIKE"
	OpIn   Operator = "IN"
)

// Condition is one storage-side filter term. Conditions in a query are ANDed.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

func Eq(column string, value any) Condition     { return Condition{Column: column, Op: OpEq, Value: value} }
func Ne(column string, value any) Condition     { return Condition{Column: column, Op: OpNe, Value: value} }
func Lt(column string, value any) Condition     { return Condition{Column: column, Op: OpLt, Value: value} }
func Gt(column string, value any) Condition     { return Condition{Column: column, Op: OpGt, Value: value} }
func Like(column, pattern string) Condition     { return Condition{Column: column, Op: OpLike, Value: pattern} }
func In(column string, values ...any) Condition { return Condition{Column: column, Op: OpIn, Value: values} }

// Order sorts by one column.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query describes a read against a Repository[T].
//
// Where is translated to SQL. Match runs in memory on every fetched row, after
// includes are loaded, so it may look at related entities too. When OrderBy is set
// the key column is appended as a tiebreaker. Include lists relation paths,
// comma separated, each path dot separated: "Course,Students" or "Group.Course".
type Query[T any] struct {
	Where   []Condition
	Match   func(*T) bool
	OrderBy []Order
	Include string
}
