package common

// AccessKeyHeaderName is the gRPC metadata key used to carry the
// service access key on outbound requests.
const AccessKeyHeaderName = "access_key"

const (
	// DefaultDiaryID is used when no diary namespace is selected.
	DefaultDiaryID = "default-diary"

	// DefaultMaxDay is the upper bound of the day sequence.
	DefaultMaxDay = 151

	DefaultImageBucket = "diary-images"
	DefaultVideoBucket = "diary-videos"

	// PromptsPath is where the static prompt table is served.
	PromptsPath = "/prompts.json"

	// PublicObjectPrefix is the path segment preceding <bucket>/<key> in public URLs.
	PublicObjectPrefix = "/object/public/"
)
