package ledger

import (
	"strconv"

	"github.com/goodnatureofminers/depositledger/internal/model"
)

const (
	transactionKeyPrefix = "transaction:"
	customerBucketPrefix = "transactions:customer:"
	// AnonymousBucketKey holds deposits to addresses that belong to no known customer.
	AnonymousBucketKey = "transactions:anon:"
)

// TransactionKey is the key of a stored transaction record.
func TransactionKey(txid string) string {
	return transactionKeyPrefix + txid
}

// BucketKey is the sorted set holding the deposits of owner.
func BucketKey(owner model.BucketOwner) string {
	if owner.IsAnonymous() {
		return AnonymousBucketKey
	}
	return customerBucketPrefix + strconv.FormatInt(owner.CustomerID(), 10)
}
