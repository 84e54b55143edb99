package rules

// defaultRulesYAML is the built-in rule set, used when no rule file exists
// and written out by `leakscope rules init`. Keeping it as YAML means the
// defaults go through the exact same loader as user rule files.
const defaultRulesYAML = `cn_mobile:
  regex: >-
    \b1[3456789]\d{9}\b
  description: Mainland China mobile phone number
  risk_level: high
cn_id_card:
  regex: >-
    \b\d{17}[\dXx]\b
  description: China resident ID card number
  risk_level: high
email:
  regex: >-
    \b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b
  description: Email address
  risk_level: medium
bank_card:
  regex: >-
    \b\d{16,19}\b
  description: Bank card number
  risk_level: high
domain:
  regex: >-
    (?i)\b(?:[a-zA-Z0-9-]+\.)+(?:com|net|org|io|co|edu|gov|mil|biz|info|me|us|ca|uk|de|fr|it|es|au|nz|jp|kr|cn|ru|br|in|mx|nl)\b
  description: Domain name
  risk_level: low
file_path:
  regex: >-
    (?:https?://|/|\.\./|\./|/[\w-]+)/(?:[\w/.?%&=-]*|[\w-]+)
  description: File or URL path
  risk_level: low
url:
  regex: >-
    (?i)\b((?:https?|ftp|file):\/\/[-a-zA-Z0-9@:%._\+~#=]{2,256}\.[a-z]{2,63}\b(?:[-a-zA-Z0-9@:%_\+.~#?&\/=]*))\b
  description: URL
  risk_level: low
jwt:
  regex: >-
    \bey[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\b
  description: JSON Web Token
  risk_level: high
jdbc_uri:
  regex: >-
    jdbc:[a-zA-Z]+:\/\/[^\s]*
  description: JDBC connection string
  risk_level: high
auth_header:
  regex: >-
    (?i)\bAuthorization:\s*(?:Bearer|Basic|Digest)\s+(?:[A-Za-z0-9-._~+/]+=*|[\w%]{2}==)\b
  description: HTTP Authorization header
  risk_level: high
credential_pair:
  regex: >-
    (?:username|user|account)\s*[:=]\s*['"](.*?)['"]\s*,\s*(?:password|pass)\s*[:=]\s*['"](.*?)['"]
  description: Username and password pair
  risk_level: high
jsapi_ticket:
  regex: >-
    \bjsapi_ticket\b
  description: API ticket reference
  risk_level: medium
crypto_algorithm:
  regex: >-
    (?i)\b(AES|DES|3DES|RC4|RSA|ECC|SM2|SM3|SM4|Blowfish|HMAC)\b
  description: Cryptographic algorithm name
  risk_level: low
secret_key:
  regex: >-
    (?i)(?:encryption|secret|private|api|auth|access|key)\s*[:=]\s*["']?([0-9a-fA-F]{32,})["']?
  description: Hex-encoded key material
  risk_level: high
crypto_iv:
  regex: >-
    (?i)(?:iv|offset|init_vector)\s*[:=]\s*["']?([0-9a-fA-F]{8,})["']?
  description: Initialization vector
  risk_level: medium
swagger_doc:
  regex: >-
    (?i)\b((?:https?://)?(?:[a-zA-Z0-9-\.]+)\/(?:v1|v2|v3|docs|swagger|apidocs|api-docs|open-api)?\/?(swagger|api-docs)(?:\.json)?)\b
  description: Swagger API documentation endpoint
  risk_level: medium
oss_endpoint:
  regex: >-
    https?://[^'")\s]*oss[^'")\s]+
  description: Object storage service endpoint
  risk_level: medium
access_key:
  regex: >-
    (?i)\baccess[_]?key\s*[:=]\s*["']([^"']+)["']
  description: Access key assignment
  risk_level: high
oss_key:
  regex: >-
    (?i)\boss\s*[_\s]*(?:key)?\s*[=:]\s*['"]([A-Z0-9]+)['"]
  description: OSS access key assignment
  risk_level: high
api_key:
  regex: >-
    (?i)\bapi[_]?key\s*[=:]\s*["']([^"']+)["']
  description: API key assignment
  risk_level: high
api_secret:
  regex: >-
    (?i)\bapi[_]?secret\s*[=:]\s*["']([^"']+)["']
  description: API secret assignment
  risk_level: high
app_key:
  regex: >-
    (?i)\bAppKey\s*:\s*["']([^"']+)["']
  description: Application key assignment
  risk_level: high
app_secret:
  regex: >-
    (?i)\bAPPSECRET\s*:\s*["']([^"']+)["']
  description: Application secret assignment
  risk_level: high
rsa_public_key:
  regex: >-
    -----BEGIN(?:\s+\w+)?\s+PUBLIC\s+KEY-----
  description: PEM public key block
  risk_level: medium
rsa_private_key:
  regex: >-
    -----BEGIN(?:\s+RSA)?\s+PRIVATE\s+KEY-----
  description: PEM private key block
  risk_level: high
`

// DefaultSource returns the built-in rule file content.
func DefaultSource() []byte {
	return []byte(defaultRulesYAML)
}

// Default returns a registry loaded with the built-in rules.
func Default() *Registry {
	r, err := Load(DefaultSource())
	if err != nil {
		panic("rules: built-in rule set invalid: " + err.Error())
	}
	return r
}
