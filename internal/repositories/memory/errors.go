package memory

import "errors"

var errDuplicateOrder = errors.New("duplicate key value violates unique constraint \"idx_transactions_gateway_order_id\"")
