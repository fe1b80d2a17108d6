package types

// Service is notified after every stored transaction
type Service interface {
	Name() string
	OnTransactionExecuted(tx *Transaction, receipt *Receipt) error
}

// ServiceBase is a base handler of the chain service
type ServiceBase struct{}

// OnTransactionExecuted does nothing
func (s *ServiceBase) OnTransactionExecuted(tx *Transaction, receipt *Receipt) error {
	return nil
}
