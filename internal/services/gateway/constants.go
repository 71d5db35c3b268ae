package gateway

// Gateway modes
const (
	ModeTest       = "test"
	ModeStaging    = "staging"
	ModeProduction = "production"
)

const (
	ProductionHost = "https://securegw.paytm.in"
	StagingHost    = "https://securegw-stage.paytm.in"
	ProcessPath    = "/order/process"

	StagingWebsite      = "WEBSTAGING"
	DefaultWebsite      = "WEB"
	DefaultChannelID    = "WEB"
	DefaultIndustryType = "Retail"
	DefaultFrontendURL  = "http://localhost:3000"
)

// Request and callback field names
const (
	FieldMID          = "MID"
	FieldWebsite      = "WEBSITE"
	FieldIndustryType = "INDUSTRY_TYPE_ID"
	FieldChannelID    = "CHANNEL_ID"
	FieldOrderID      = "ORDER_ID"
	FieldCustomerID   = "CUST_ID"
	FieldTxnAmount    = "TXN_AMOUNT"
	FieldCallbackURL  = "CALLBACK_URL"
	FieldChecksum     = "CHECKSUMHASH"

	FieldOrderIDAlt  = "ORDERID"
	FieldOrderIDLow  = "orderId"
	FieldStatus      = "STATUS"
	FieldTxnID       = "TXNID"
	FieldAmount      = "TXNAMOUNT"
	FieldRespMsg     = "RESPMSG"
	FieldRespCode    = "RESPCODE"
	StatusTxnSuccess = "TXN_SUCCESS"
)

// Failure reasons
const (
	ReasonMissingChecksum = "Missing CHECKSUMHASH"
	ReasonInvalidChecksum = "Invalid checksum"
	ReasonPaymentFailed   = "Payment failed"
	ReasonMissingOrderID  = "Missing order id"
)
