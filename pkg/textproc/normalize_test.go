package textproc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kodesword/blograg/pkg/textproc"
)

var _ = Describe("Normalize", func() {
	It("strips tags and keeps text content", func() {
		Expect(textproc.Normalize("<p>Hello world. Hello again.</p>")).
			To(Equal("Hello world. Hello again."))
	})

	It("drops script elements entirely", func() {
		html := `<p>before</p><script>var x = "hidden";</script><p>after</p>`
		Expect(textproc.Normalize(html)).To(Equal("before after"))
	})

	It("drops style elements entirely", func() {
		html := `<style>p { color: red; }</style><p>visible</p>`
		Expect(textproc.Normalize(html)).To(Equal("visible"))
	})

	It("collapses runs of whitespace including newlines", func() {
		html := "<div>one\n\n  two\t\tthree</div>"
		Expect(textproc.Normalize(html)).To(Equal("one two three"))
	})

	It("trims leading and trailing whitespace", func() {
		Expect(textproc.Normalize("  <p>  padded  </p>  ")).To(Equal("padded"))
	})

	It("handles nested markup", func() {
		html := `<article><h1>Title</h1><p>Some <em>emphasized</em> text.</p></article>`
		Expect(textproc.Normalize(html)).To(Equal("Title Some emphasized text."))
	})

	It("never fails on malformed markup", func() {
		Expect(textproc.Normalize("<p>unclosed <b>bold")).To(Equal("unclosed bold"))
		Expect(textproc.Normalize("just plain text")).To(Equal("just plain text"))
	})

	It("returns empty output for empty input", func() {
		Expect(textproc.Normalize("")).To(Equal(""))
	})

	It("is deterministic", func() {
		html := `<div><script>x</script>stable <span>output</span></div>`
		first := textproc.Normalize(html)
		Expect(textproc.Normalize(html)).To(Equal(first))
	})
})
