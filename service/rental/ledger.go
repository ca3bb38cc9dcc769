package rental

import "librarydesk/model"

// Availability ledger: the gating predicates for the three
// state-changing actions. Pure functions over loaded records; every
// handler consults these before writing.

// CanCheckout reports whether a new rental may be opened on the book.
// One book row is one physical copy.
func CanCheckout(b *model.Book) bool { return b.Available }

// CanReturn reports whether the rental is still active.
func CanReturn(r *model.Rental) bool { return !r.Returned }

// CanExtend reports whether the rental may be extended. Extension is
// one-shot: once extended is set it never clears.
func CanExtend(r *model.Rental) bool { return !r.Returned && !r.Extended }

// CheckCheckout turns the checkout predicate into a coded error.
func CheckCheckout(b *model.Book) error {
	if !CanCheckout(b) {
		return makeErr(ErrBookUnavailable)
	}
	return nil
}

// CheckReturn turns the return predicate into a coded error.
func CheckReturn(r *model.Rental) error {
	if !CanReturn(r) {
		return makeErr(ErrAlreadyReturned)
	}
	return nil
}

// CheckExtend validates an extension request. Check order matters:
// returned wins over extended, and a missing end date is only reported
// once the rental is actually extendable.
func CheckExtend(r *model.Rental, newEnd model.Date) error {
	if r.Returned {
		return makeErr(ErrExtendReturned)
	}
	if r.Extended {
		return makeErr(ErrAlreadyExtended)
	}
	if newEnd.IsZero() {
		return makeErr(ErrEndDateMissing)
	}
	return nil
}
