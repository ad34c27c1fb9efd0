package llm_test

import (
	"council.app/council/common/llm"
	"github.com/invopop/jsonschema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleShape struct {
	Verdict string `json:"verdict" jsonschema_description:"One-line verdict"`
	Score   int    `json:"score"`
}

var _ = Describe("New", func() {
	It("rejects an empty API key", func() {
		_, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI})
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown provider", func() {
		_, err := llm.New(llm.Config{Provider: "cohere", APIKey: "k"})
		Expect(err).To(MatchError(ContainSubstring("unsupported LLM provider")))
	})

	It("defaults to OpenAI when no provider is set", func() {
		client, err := llm.New(llm.Config{APIKey: "k", Model: "gpt-4o"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("gpt-4o"))
	})

	It("builds an Anthropic client with a default model", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "k"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).NotTo(BeEmpty())
	})
})

var _ = Describe("GenerateSchema", func() {
	It("reflects a strict inline schema", func() {
		schema, ok := llm.GenerateSchema[sampleShape]().(*jsonschema.Schema)
		Expect(ok).To(BeTrue())
		Expect(schema.AdditionalProperties).NotTo(BeNil())

		verdict, found := schema.Properties.Get("verdict")
		Expect(found).To(BeTrue())
		Expect(verdict.Type).To(Equal("string"))
		Expect(verdict.Description).To(Equal("One-line verdict"))

		score, found := schema.Properties.Get("score")
		Expect(found).To(BeTrue())
		Expect(score.Type).To(Equal("integer"))
	})

	It("matches the instance-based reflector", func() {
		fromType := llm.GenerateSchema[sampleShape]().(*jsonschema.Schema)
		fromValue := llm.GenerateSchemaFrom(sampleShape{}).(*jsonschema.Schema)
		Expect(fromValue.Properties.Len()).To(Equal(fromType.Properties.Len()))
	})
})

var _ = Describe("DataURL", func() {
	It("renders the media type and payload", func() {
		url := llm.DataURL(llm.Attachment{Data: "aGVsbG8=", MediaType: "image/png"})
		Expect(url).To(Equal("data:image/png;base64,aGVsbG8="))
	})
})

var _ = Describe("Temp", func() {
	It("pins an explicit temperature", func() {
		t := llm.Temp(0)
		Expect(t).NotTo(BeNil())
		Expect(*t).To(BeZero())
	})
})
