package coolant_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCoolant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Coolant Suite")
}
