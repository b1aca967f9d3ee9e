// Package protocol implements the Saturn message model: the envelope codec,
// the per-message schema readers/writers, the signed-message policy layer and
// the request-hash binding. Cryptography is delegated to the signing and
// cipher services; this package owns the consistency rules between messages.
package protocol

// JSON property names shared by the message types. Declaration order in the
// encoders below is the canonical (signed) field order.
const (
	contextJSON   = "@context"
	qualifierJSON = "@qualifier"

	amountJSON                  = "amount"
	currencyJSON                = "currency"
	payeeJSON                   = "payee"
	commonNameJSON              = "commonName"
	idJSON                      = "id"
	homePageJSON                = "homePage"
	referenceIDJSON             = "referenceId"
	timeStampJSON               = "timeStamp"
	expiresJSON                 = "expires"
	softwareJSON                = "software"
	nameJSON                    = "name"
	versionJSON                 = "version"
	authorityURLJSON            = "authorityUrl"
	serviceURLJSON              = "serviceUrl"
	providerAuthorityURLJSON    = "providerAuthorityUrl"
	acquirerAuthorityURLJSON    = "acquirerAuthorityUrl"
	httpVersionJSON             = "httpVersion"
	paymentMethodJSON           = "paymentMethod"
	paymentRequestJSON          = "paymentRequest"
	supportedPaymentMethodsJSON = "supportedPaymentMethods"
	encryptedAuthorizationJSON  = "encryptedAuthorization"
	payeeReceiveAccountJSON     = "payeeReceiveAccount"
	clientIPAddressJSON         = "clientIpAddress"
	accountReferenceJSON        = "accountReference"
	encryptedAccountDataJSON    = "encryptedAccountData"
	providerAuthorizationJSON   = "providerAuthorization"
	recipientURLJSON            = "recipientUrl"
	logDataJSON                 = "logData"
	testModeJSON                = "testMode"
	requestHashJSON             = "requestHash"
	errorCodeJSON               = "errorCode"
	descriptionJSON             = "description"
	accountIDJSON               = "accountId"
	ibanJSON                    = "iban"
	cardNumberJSON              = "cardNumber"
	cardHolderJSON              = "cardHolder"
	securityCodeJSON            = "securityCode"
	bgNumberJSON                = "bgNumber"
	nonceJSON                   = "nonce"
	typeJSON                    = "type"
	signatureProfilesJSON       = "signatureProfiles"
	signatureParametersJSON     = "signatureParameters"
	encryptionParametersJSON    = "encryptionParameters"
	dataEncryptionAlgJSON       = "dataEncryptionAlgorithm"
	keyEncryptionAlgJSON        = "keyEncryptionAlgorithm"
	keyEncryptionJSON           = "keyEncryption"
	encryptedKeyJSON            = "encryptedKey"
	ivJSON                      = "iv"
	tagJSON                     = "tag"
	cipherTextJSON              = "cipherText"
	algorithmJSON               = "algorithm"
	publicKeyJSON               = "publicKey"
	certificatePathJSON         = "certificatePath"
	valueJSON                   = "value"
)

// Signature labels. The label varies by protocol generation and message
// direction; each message type names the one it carries.
const (
	SignatureLabel              = "signature"
	RequestSignatureLabel       = "requestSignature"
	AuthorizationSignatureLabel = "authorizationSignature"
	IssuerSignatureLabel        = "issuerSignature"
)
