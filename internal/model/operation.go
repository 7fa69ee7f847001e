package model

// Key is a recognized top-level request key.
type Key string

const (
	KeyFibonacci Key = "fibonacci"
	KeyPrime     Key = "prime"
	KeyHCF       Key = "hcf"
	KeyLCM       Key = "lcm"
	KeyAI        Key = "AI"
)

// Operation is the closed set of computations a request can select.
//
// The unexported method keeps the set closed to this package; the
// dispatcher switches over the concrete types below.
type Operation interface {
	Key() Key
	operation()
}

// Fibonacci asks for the first N Fibonacci numbers.
type Fibonacci struct {
	N int `validate:"min=0"`
}

// Prime asks for the primes among Values.
type Prime struct {
	Values []int64 `validate:"required"`
}

// HCF asks for the greatest common divisor of Values.
type HCF struct {
	Values []int64 `validate:"required,min=1"`
}

// LCM asks for the least common multiple of Values.
type LCM struct {
	Values []int64 `validate:"required,min=1"`
}

// AI asks the remote answer service a question.
type AI struct {
	Question string `validate:"required"`
}

func (Fibonacci) Key() Key { return KeyFibonacci }
func (Prime) Key() Key     { return KeyPrime }
func (HCF) Key() Key       { return KeyHCF }
func (LCM) Key() Key       { return KeyLCM }
func (AI) Key() Key        { return KeyAI }

func (Fibonacci) operation() {}
func (Prime) operation()     {}
func (HCF) operation()       {}
func (LCM) operation()       {}
func (AI) operation()        {}
