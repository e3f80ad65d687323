package storescu

// Observer follows a transfer object by object. ShouldStop is polled after
// every object; returning true ends the job once the association has been
// released.
type Observer interface {
	BeforeSend(entry *TransferEntry)
	AfterSend(entry *TransferEntry)
	ShouldStop() bool
}

// ObserverFuncs adapts optional functions to Observer
type ObserverFuncs struct {
	Before func(entry *TransferEntry)
	After  func(entry *TransferEntry)
	Stop   func() bool
}

func (o ObserverFuncs) BeforeSend(entry *TransferEntry) {
	if o.Before != nil {
		o.Before(entry)
	}
}

func (o ObserverFuncs) AfterSend(entry *TransferEntry) {
	if o.After != nil {
		o.After(entry)
	}
}

func (o ObserverFuncs) ShouldStop() bool {
	return o.Stop != nil && o.Stop()
}
