// Where: cli/internal/domain/names/names.go
// What: Platform-conformant resource name derivation.
// Why: Generators must never copy raw user input into a platform identifier.
package names

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/otlp2parquet/cli/internal/domain/failure"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Platform identifies the deployment target owning a name kind.
type Platform string

const (
	Cloudflare Platform = "cloudflare"
	AWS        Platform = "aws"
)

// Kind selects the naming constraints a derived name must satisfy.
type Kind int

const (
	CloudflareWorker Kind = iota + 1
	R2Bucket
	WorkerBinding
	CloudFormationStack
	LogicalID
	LambdaFunction
	S3Bucket
	S3TableBucket
	S3TablesNamespace
)

type style int

const (
	lowerHyphen style = iota
	lowerSnake
	upperSnake
	pascal
	mixedHyphen
)

const digestLen = 6

type rule struct {
	label        string
	platform     Platform
	style        style
	min          int
	max          int
	pattern      *regexp.Regexp
	letterPrefix string
	badPrefixes  []string
	badSuffixes  []string
}

var (
	lowerHyphenPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	s3ReservedPrefixes = []string{"xn--", "sthree-", "amzn-s3-demo-"}
	s3ReservedSuffixes = []string{"-s3alias", "--ol-s3", "--x-s3", "--table-s3"}
)

var rules = map[Kind]rule{
	CloudflareWorker: {
		label: "worker", platform: Cloudflare, style: lowerHyphen,
		min: 1, max: 63, pattern: lowerHyphenPattern,
	},
	R2Bucket: {
		label: "r2 bucket", platform: Cloudflare, style: lowerHyphen,
		min: 3, max: 63, pattern: lowerHyphenPattern,
	},
	WorkerBinding: {
		label: "binding", platform: Cloudflare, style: upperSnake,
		min: 1, max: 64, pattern: regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`),
		letterPrefix: "BUCKET_",
	},
	CloudFormationStack: {
		label: "stack", platform: AWS, style: mixedHyphen,
		min: 1, max: 128, pattern: regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`),
		letterPrefix: "stack-",
	},
	LogicalID: {
		label: "logical id", platform: AWS, style: pascal,
		min: 1, max: 255, pattern: regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`),
		letterPrefix: "R",
	},
	LambdaFunction: {
		label: "function", platform: AWS, style: mixedHyphen,
		min: 1, max: 64, pattern: regexp.MustCompile(`^[A-Za-z0-9_-]+$`),
	},
	S3Bucket: {
		label: "s3 bucket", platform: AWS, style: lowerHyphen,
		min: 3, max: 63, pattern: lowerHyphenPattern,
		badPrefixes: s3ReservedPrefixes, badSuffixes: s3ReservedSuffixes,
	},
	S3TableBucket: {
		label: "table bucket", platform: AWS, style: lowerHyphen,
		min: 3, max: 63, pattern: lowerHyphenPattern,
		badPrefixes: append([]string{"aws"}, s3ReservedPrefixes...),
		badSuffixes: s3ReservedSuffixes,
	},
	S3TablesNamespace: {
		label: "namespace", platform: AWS, style: lowerSnake,
		min: 1, max: 255, pattern: regexp.MustCompile(`^[a-z0-9]([a-z0-9_]*[a-z0-9])?$`),
		badPrefixes: []string{"aws"},
	},
}

func (k Kind) String() string {
	if r, ok := rules[k]; ok {
		return r.label
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Platform returns the platform whose constraints the kind encodes.
func (k Kind) Platform() Platform {
	return rules[k].platform
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		CloudflareWorker, R2Bucket, WorkerBinding,
		CloudFormationStack, LogicalID, LambdaFunction,
		S3Bucket, S3TableBucket, S3TablesNamespace,
	}
}

// Derive normalizes base into a name satisfying the constraints of kind.
// The result depends only on its arguments. Bases that normalize to nothing,
// or to fewer characters than the kind allows, fail with a name error.
func Derive(base string, kind Kind) (string, error) {
	r, ok := rules[kind]
	if !ok {
		return "", failure.Name("", "derive name", errors.Newf("unsupported name kind %d", int(kind)))
	}
	step := "derive " + r.label + " name"

	words := splitWords(fold(base))
	if len(words) == 0 {
		return "", failure.Name(string(r.platform), step,
			errors.Newf("%q contains no usable characters", base))
	}

	name := join(words, r.style)
	name = stripReserved(name, r)
	if name == "" {
		return "", failure.Name(string(r.platform), step,
			errors.Newf("%q consists only of reserved affixes", base))
	}
	if r.letterPrefix != "" && !startsWithLetter(name) {
		name = r.letterPrefix + name
	}
	if len(name) > r.max {
		name = truncate(name, r)
	}
	if len(name) < r.min {
		return "", failure.Name(string(r.platform), step,
			errors.Newf("%q is too short after normalization (%q, minimum %d characters)", base, name, r.min))
	}
	if err := Check(name, kind); err != nil {
		return "", failure.Name(string(r.platform), step, err)
	}
	return name, nil
}

// Check reports whether name already satisfies the constraints of kind.
func Check(name string, kind Kind) error {
	r, ok := rules[kind]
	if !ok {
		return errors.Newf("unsupported name kind %d", int(kind))
	}
	if len(name) < r.min || len(name) > r.max {
		return errors.Newf("%s %q must be %d-%d characters", r.label, name, r.min, r.max)
	}
	if !r.pattern.MatchString(name) {
		return errors.Newf("%s %q must match %s", r.label, name, r.pattern.String())
	}
	lower := strings.ToLower(name)
	for _, prefix := range r.badPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return errors.Newf("%s %q must not start with %q", r.label, name, prefix)
		}
	}
	for _, suffix := range r.badSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return errors.Newf("%s %q must not end with %q", r.label, name, suffix)
		}
	}
	return nil
}

var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold strips diacritics so "Télémétrie" keeps its letters as "Telemetrie".
func fold(value string) string {
	out, _, err := transform.String(foldTransformer, value)
	if err != nil {
		return value
	}
	return out
}

func splitWords(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

func join(words []string, s style) string {
	switch s {
	case lowerHyphen:
		return strings.ToLower(strings.Join(words, "-"))
	case lowerSnake:
		return strings.ToLower(strings.Join(words, "_"))
	case upperSnake:
		return strings.ToUpper(strings.Join(words, "_"))
	case pascal:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(titleCaser.String(w))
		}
		return b.String()
	default:
		return strings.Join(words, "-")
	}
}

func separator(s style) string {
	switch s {
	case lowerSnake, upperSnake:
		return "_"
	case pascal:
		return ""
	default:
		return "-"
	}
}

func stripReserved(name string, r rule) string {
	sep := separator(r.style)
	for changed := true; changed; {
		changed = false
		for _, prefix := range r.badPrefixes {
			if strings.HasPrefix(strings.ToLower(name), prefix) {
				name = trimSeparators(name[len(prefix):], sep)
				changed = true
			}
		}
		for _, suffix := range r.badSuffixes {
			if strings.HasSuffix(strings.ToLower(name), suffix) {
				name = trimSeparators(name[:len(name)-len(suffix)], sep)
				changed = true
			}
		}
	}
	return name
}

// truncate shortens name to the kind's maximum, keeping a digest of the full
// name so that distinct long bases do not collapse onto the same result.
func truncate(name string, r rule) string {
	sep := separator(r.style)
	digest := fmt.Sprintf("%016x", xxhash.Sum64String(name))[:digestLen]
	if r.style == upperSnake {
		digest = strings.ToUpper(digest)
	}
	keep := r.max - len(digest) - len(sep)
	head := trimSeparators(name[:keep], sep)
	return head + sep + digest
}

func trimSeparators(value, sep string) string {
	if sep == "" {
		return value
	}
	return strings.Trim(value, sep)
}

func startsWithLetter(value string) bool {
	if value == "" {
		return false
	}
	c := value[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
