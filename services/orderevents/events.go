package orderevents

const (
	TopicName                = "guestorder"
	guestSessionStartedName  = TopicName + ".sessionStarted"
	orderModifiedName        = TopicName + ".modified"
	batchCommittedName       = TopicName + ".batchCommitted"
	orderCancelledName       = TopicName + ".cancelled"
	modificationRejectedName = TopicName + ".modificationRejected"
)

// Diagnostic events published fire-and-forget. A failed publish is logged
// and must never alter the outcome of the mutation it describes.

type GuestSessionStarted struct {
	OrderUID         string
	TokenSource      string
	RemainingSeconds int
}

func (e GuestSessionStarted) GetEventTypeName() string {
	return guestSessionStartedName
}

func (e GuestSessionStarted) GetAggregateName() string {
	return e.OrderUID
}

type OrderModified struct {
	OrderUID  string
	Operation string
}

func (e OrderModified) GetEventTypeName() string {
	return orderModifiedName
}

func (e OrderModified) GetAggregateName() string {
	return e.OrderUID
}

type BatchCommitted struct {
	OrderUID       string
	ItemsCommitted int
	ItemsQueued    int
	FailureKind    string
}

func (e BatchCommitted) GetEventTypeName() string {
	return batchCommittedName
}

func (e BatchCommitted) GetAggregateName() string {
	return e.OrderUID
}

type OrderCancelled struct {
	OrderUID string
	Reason   string
}

func (e OrderCancelled) GetEventTypeName() string {
	return orderCancelledName
}

func (e OrderCancelled) GetAggregateName() string {
	return e.OrderUID
}

type ModificationRejected struct {
	OrderUID    string
	Operation   string
	FailureKind string
	BackendCode string
}

func (e ModificationRejected) GetEventTypeName() string {
	return modificationRejectedName
}

func (e ModificationRejected) GetAggregateName() string {
	return e.OrderUID
}
