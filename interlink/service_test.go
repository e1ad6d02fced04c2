package interlink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/synthesizer"
)

func TestService_Sync(t *testing.T) {
	narrow := config.DefaultConfig()
	narrow.MaxLineLength = 50

	var testCases = []struct {
		description string
		config      *config.Config
		input       string
		expected    string
	}{
		{
			description: "computed and observed variables without initializer",
			input: `struct Test {
    private let dep1: String
    var dep2: String {
        get {
            dep1
        }
        set {
            dep1 = newValue
        }
    }
    var dep3: String {
        dep1
    }
    var dep5: String {
        didSet {
            dep1 = dep5
        }
    }
}`,
			expected: `struct Test {
    private let dep1: String
    var dep2: String {
        get {
            dep1
        }
        set {
            dep1 = newValue
        }
    }
    var dep3: String {
        dep1
    }
    var dep5: String {
        didSet {
            dep1 = dep5
        }
    }

    init(dep1: String, dep5: String) {
        self.dep1 = dep1
        self.dep5 = dep5
    }
}`,
		},
		{
			description: "failable throwing initializer is kept",
			input: `struct Test {
    private let dep1: String

    init?(dep1: String) throws {
        self.dep1 = dep1
    }
}`,
			expected: `struct Test {
    private let dep1: String

    init?(dep1: String) throws {
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "indirect parameter is kept",
			input: `class Test {
    private let value1: Int

    init(value1: Int, value2: Int, value3: Int) {
        self.value1 = value1 + value2 + value3
    }
}`,
			expected: `class Test {
    private let value1: Int

    init(value1: Int, value2: Int, value3: Int) {
        self.value1 = value1 + value2 + value3
    }
}`,
		},
		{
			description: "wrong parameter name",
			input: `struct Test {
    private let dep1: () -> Void

    init(dep2: @escaping () -> Void) {
        self.dep1 = dep1
    }
}`,
			expected: `struct Test {
    private let dep1: () -> Void

    init(dep1: @escaping () -> Void) {
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "wrong assignment name",
			input: `struct Test {
    private let dep1: () -> Void

    init(dep1: @escaping () -> Void) {
        self.dep2 = dep1
    }
}`,
			expected: `struct Test {
    private let dep1: () -> Void

    init(dep1: @escaping () -> Void) {
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "unordered parameters and assignments",
			input: `struct Test {
    private let dep1: () -> Void
    let dep2: (String, Int?)
    internal let dep3: (() -> Void)?

    init(dep3: (() -> Void)?, dep2: (String, Int?), dep1: @escaping () -> Void) {
        self.dep2 = dep2
        self.dep3 = dep3
        self.dep1 = dep1
    }
}`,
			expected: `struct Test {
    private let dep1: () -> Void
    let dep2: (String, Int?)
    internal let dep3: (() -> Void)?

    init(dep1: @escaping () -> Void, dep2: (String, Int?), dep3: (() -> Void)?) {
        self.dep1 = dep1
        self.dep2 = dep2
        self.dep3 = dep3
    }
}`,
		},
		{
			description: "dangling parameters and assignments with function call",
			input: `class Test {
    private let dep1: String?
    private let dep5: (() -> Void)?

    init(dep3: Int?, dep2: @escaping () -> Void, dep5: (() -> Void)?) {
        let value = ""
        self.dep2 = dep2
        self.dep4 = dep4
        self.dep5 = dep5

        configure()
    }

    func configure() {}
}`,
			expected: `class Test {
    private let dep1: String?
    private let dep5: (() -> Void)?

    init(dep1: String?, dep5: (() -> Void)?) {
        self.dep1 = dep1
        self.dep5 = dep5

        configure()
    }

    func configure() {}
}`,
		},
		{
			description: "optional variables need no parameter",
			input: `struct Test {
    var dep1: (() -> Void)?
}`,
			expected: `struct Test {
    var dep1: (() -> Void)?
}`,
		},
		{
			description: "nested types",
			input: `struct Test {
    struct Test2 {
        class Test3 {
            var dep3: String
        }
        private let dep2: () -> Void
    }
    private let dep1: () -> Void
}`,
			expected: `struct Test {
    struct Test2 {
        class Test3 {
            var dep3: String

            init(dep3: String) {
                self.dep3 = dep3
            }
        }
        private let dep2: () -> Void

        init(dep2: @escaping () -> Void) {
            self.dep2 = dep2
        }
    }
    private let dep1: () -> Void

    init(dep1: @escaping () -> Void) {
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "inserted before nested member",
			input: `class Test {
    fileprivate let dep1: String?

    private let dep2: String

    private struct Nest {}
}`,
			expected: `class Test {
    fileprivate let dep1: String?

    private let dep2: String

    init(dep1: String?, dep2: String) {
        self.dep1 = dep1
        self.dep2 = dep2
    }

    private struct Nest {}
}`,
		},
		{
			description: "lazy and preset variables",
			input: `struct Test {
    lazy var dep2: String = "42"
    private let dep1: () -> Void
    internal var dep3: String = "42"
}`,
			expected: `struct Test {
    lazy var dep2: String = "42"
    private let dep1: () -> Void
    internal var dep3: String = "42"

    init(dep1: @escaping () -> Void) {
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "parameters in field declaration order",
			input: `struct Test {
    let dep2: String
    private let dep1: () -> Void
}`,
			expected: `struct Test {
    let dep2: String
    private let dep1: () -> Void

    init(dep2: String, dep1: @escaping () -> Void) {
        self.dep2 = dep2
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "unrelated field assignment replaced",
			input: `struct Test {
    private let dep1: String?

    init(dep3: Int?) {
        self.dep2 = dep3
    }
}`,
			expected: `struct Test {
    private let dep1: String?

    init(dep1: String?) {
        self.dep1 = dep1
    }
}`,
		},
		{
			description: "computed values and functions sorted by field order",
			input: `class Test {
    var dependency1: String
    private let dep2: Int

    init(valuer1: Int, valuer2: Int, computer1: String, computer2: String) {
        struct Model {
            let val: String
        }
        let val = ""
        let computedValue = "\(computer1) + \(computer2)"
        self.dependency1 = computedValue
        func dependencyCompute(valuer1: Int, valuer2: Int) -> Int {
            return valuer1 + valuer2
        }
        self.dep2 = dependencyCompute(valuer1: Model(val: "\(valuer1)").val, valuer2: valuer2)
    }
}`,
			expected: `class Test {
    var dependency1: String
    private let dep2: Int

    init(computer1: String, computer2: String, valuer1: Int, valuer2: Int) {
        let computedValue = "\(computer1) + \(computer2)"
        self.dependency1 = computedValue
        struct Model {
            let val: String

            init(val: String) {
                self.val = val
            }
        }
        func dependencyCompute(valuer1: Int, valuer2: Int) -> Int {
            return valuer1 + valuer2
        }
        self.dep2 = dependencyCompute(valuer1: Model(val: "\(valuer1)").val, valuer2: valuer2)
    }
}`,
		},
		{
			description: "parameter clause wrapped over max line length",
			config:      narrow,
			input: `struct Test {
    private let dep1: () -> Void
    var dep2, dep3, dep4, dep5: String
}`,
			expected: `struct Test {
    private let dep1: () -> Void
    var dep2, dep3, dep4, dep5: String

    init(
        dep1: @escaping () -> Void,
        dep2: String,
        dep3: String,
        dep4: String,
        dep5: String
    ) {
        self.dep1 = dep1
        self.dep2 = dep2
        self.dep3 = dep3
        self.dep4 = dep4
        self.dep5 = dep5
    }
}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			service := New(tc.config)
			result, err := service.Sync(context.Background(), []byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(result.Output))
			assert.Equal(t, tc.input != tc.expected, result.Changed)

			again, err := service.Sync(context.Background(), result.Output)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(again.Output), "idempotent")
			assert.False(t, again.Changed)
		})
	}
}

func TestService_Interlink(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expected    string
		expectErr   bool
		reason      string
	}{
		{
			description: "decoder initializer rejected",
			input: `struct Test: Decodable {
    let dep1: String

    init(from decoder: Decoder) throws {
        dep1 = ""
    }
}`,
			expectErr: true,
			reason:    "Interlinking couldn't be performed. Decodable initializers are unsupported at the moment.",
		},
		{
			description: "coder initializer rejected",
			input: `class Controller {
    let dep1: String

    init?(coder: NSCoder) {
        self.dep1 = ""
    }
}`,
			expectErr: true,
			reason:    "Interlinking couldn't be performed. ViewController's NSCoder initializers are unsupported at the moment.",
		},
		{
			description: "convenience initializer rejected",
			input: `class Test {
    let dep1: String

    convenience init() {
        self.init(dep1: "")
    }
}`,
			expectErr: true,
			reason:    "Interlinking couldn't be performed. Convenience initializers are unsupported at the moment.",
		},
		{
			description: "plain initializer reconciled",
			input: `struct Test {
    private let dep1: () -> Void

    init(dep1: @escaping () -> Void) {
        self.dep2 = dep1
    }
}`,
			expected: `struct Test {
    private let dep1: () -> Void

    init(dep1: @escaping () -> Void) {
        self.dep1 = dep1
    }
}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			service := New(nil)
			result, err := service.Interlink(context.Background(), []byte(tc.input))
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, synthesizer.ErrUnsupportedInitializerFormat))
				assert.Equal(t, tc.reason, err.Error())
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(result.Output))
		})
	}
}

func TestService_SyncDecoder(t *testing.T) {
	input := `struct Test: Decodable {
    let dep1: String

    init(from decoder: Decoder) throws {
        dep1 = ""
    }
}`
	expected := `struct Test: Decodable {
    let dep1: String

    init(dep1: String) {
        self.dep1 = dep1
    }

    init(from decoder: Decoder) throws {
        dep1 = ""
    }
}`
	result, err := New(nil).Sync(context.Background(), []byte(input))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, expected, string(result.Output))
}

func TestService_SyncURL(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	input := `struct Test {
    let dep1: String
}`
	expected := `struct Test {
    let dep1: String

    init(dep1: String) {
        self.dep1 = dep1
    }
}`

	var testCases = []struct {
		description string
		URL         string
		write       bool
		expected    string
	}{
		{description: "check only", URL: "mem://localhost/interlinked/check/Test.swift", expected: input},
		{description: "write back", URL: "mem://localhost/interlinked/write/Test.swift", write: true, expected: expected},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			require.NoError(t, fs.Upload(ctx, tc.URL, os.FileMode(0644), bytes.NewReader([]byte(input))))
			service := New(nil, WithFS(fs))
			result, err := service.SyncURL(ctx, tc.URL, tc.write)
			require.NoError(t, err)
			assert.True(t, result.Changed)
			assert.Equal(t, expected, string(result.Output))
			hash, err := graph.Hash(result.Output)
			require.NoError(t, err)
			assert.Equal(t, hash, result.Hash)

			stored, err := fs.DownloadWithURL(ctx, tc.URL)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(stored))
		})
	}
}

func TestService_InterlinkURLUnsupported(t *testing.T) {
	_, err := New(nil).InterlinkURL(context.Background(), "mem://localhost/interlinked/Test.go", false)
	assert.Error(t, err)
}

func TestService_Collect(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	files := map[string]string{
		"mem://localhost/collect/a/A.swift":    "struct A {}",
		"mem://localhost/collect/B.swift":      "struct B {}",
		"mem://localhost/collect/.git/C.swift": "struct C {}",
		"mem://localhost/collect/README.md":    "readme",
	}
	for URL, content := range files {
		require.NoError(t, fs.Upload(ctx, URL, os.FileMode(0644), bytes.NewReader([]byte(content))))
	}
	service := New(nil, WithFS(fs))

	URLs, err := service.Collect(ctx, "mem://localhost/collect")
	require.NoError(t, err)
	require.Len(t, URLs, 2)
	assert.True(t, strings.HasSuffix(URLs[0], "/A.swift") || strings.HasSuffix(URLs[1], "/A.swift"))
	assert.True(t, strings.HasSuffix(URLs[0], "/B.swift") || strings.HasSuffix(URLs[1], "/B.swift"))

	URLs, err = service.Collect(ctx, "mem://localhost/collect/B.swift")
	require.NoError(t, err)
	assert.Equal(t, []string{"mem://localhost/collect/B.swift"}, URLs)

	_, err = service.Collect(ctx, "mem://localhost/collect/README.md")
	assert.Error(t, err)
}
