package queue_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kodesword/blograg/pkg/queue"
)

var _ = Describe("Job", func() {
	Describe("Encode and DecodeJob", func() {
		It("round-trips an index job", func() {
			original := &queue.Job{DocumentID: "blog-123", Action: queue.ActionIndex}

			data, err := original.Encode()
			Expect(err).NotTo(HaveOccurred())

			decoded, err := queue.DecodeJob(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(original))
		})

		It("round-trips a delete job", func() {
			original := &queue.Job{DocumentID: "blog-123", Action: queue.ActionDelete}

			data, err := original.Encode()
			Expect(err).NotTo(HaveOccurred())

			decoded, err := queue.DecodeJob(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Action).To(Equal(queue.ActionDelete))
		})

		It("accepts a bare document id as an index job", func() {
			decoded, err := queue.DecodeJob([]byte("blog-legacy"))
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.DocumentID).To(Equal("blog-legacy"))
			Expect(decoded.Action).To(Equal(queue.ActionIndex))
		})

		It("defaults a missing action to index", func() {
			decoded, err := queue.DecodeJob([]byte(`{"blog_id":"blog-123"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Action).To(Equal(queue.ActionIndex))
		})

		It("rejects a payload without a document id", func() {
			_, err := queue.DecodeJob([]byte(`{"action":"index"}`))
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown action", func() {
			_, err := queue.DecodeJob([]byte(`{"blog_id":"blog-123","action":"purge"}`))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		It("accepts a well-formed job", func() {
			job := &queue.Job{DocumentID: "blog-123", Action: queue.ActionIndex}
			Expect(job.Validate()).To(Succeed())
		})

		It("rejects an empty document id", func() {
			job := &queue.Job{Action: queue.ActionIndex}
			Expect(job.Validate()).To(HaveOccurred())
		})

		It("rejects an empty action", func() {
			job := &queue.Job{DocumentID: "blog-123"}
			Expect(job.Validate()).To(HaveOccurred())
		})
	})
})
