package model

import (
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
)

// BucketOwner identifies a ranked deposit bucket: a customer or the anonymous bucket.
type BucketOwner struct {
	customerID int64
	anonymous  bool
}

// AnonymousOwner addresses deposits whose wallet did not resolve to a customer.
var AnonymousOwner = BucketOwner{anonymous: true}

// CustomerOwner addresses the bucket of a single customer.
func CustomerOwner(id int64) BucketOwner {
	return BucketOwner{customerID: id}
}

// IsAnonymous reports whether the owner is the anonymous bucket.
func (o BucketOwner) IsAnonymous() bool {
	return o.anonymous
}

// CustomerID returns the customer id; it is meaningless for the anonymous owner.
func (o BucketOwner) CustomerID() int64 {
	return o.customerID
}

func (o BucketOwner) String() string {
	if o.anonymous {
		return "anonymous"
	}
	return "customer:" + strconv.FormatInt(o.customerID, 10)
}

// Stats aggregates the deposits of one bucket.
type Stats struct {
	Count int64
	Total btcutil.Amount
	Min   btcutil.Amount
	Max   btcutil.Amount
}

// Empty reports whether the bucket had no deposits.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// GlobalStats holds the extremes across every non-empty bucket.
type GlobalStats struct {
	Smallest    btcutil.Amount
	Largest     btcutil.Amount
	HasDeposits bool
}
