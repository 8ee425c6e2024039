package core_test

import (
	"fmt"

	"github.com/redactyl/piiredact/pkg/core"
)

func ExampleProcessJSON() {
	res, err := core.ProcessJSON(`{"name": "John Doe", "phone": "9876543210"}`, core.Options{})
	if err != nil {
		fmt.Println("malformed:", err)
		return
	}
	fmt.Println(res.Data)
	fmt.Println(res.Sensitive)
	// Output:
	// {"name": "John Doe", "phone": "98XXXXXX10"}
	// true
}

func ExampleProcessJSON_maskOnSensitive() {
	res, _ := core.ProcessJSON(`{"name": "John Doe", "phone": "9876543210"}`, core.Options{Policy: core.PolicyMaskOnSensitive})
	fmt.Println(res.Data)
	// Output: {"name": "JXXX DXXX", "phone": "98XXXXXX10"}
}
