package linear_test

import (
	"context"
	"fmt"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
)

// ExampleAllOrders enumerates the reading orders of a line where one sign
// position has two competing interpretations.
func ExampleAllOrders() {
	doc := edition.Document{
		ID:   1,
		Name: "example",
		TextFragments: []edition.FragmentDoc{{
			ID: 1, TextFragmentName: "frg. 1",
			Lines: []edition.LineDoc{{
				ID: 1, LineName: "1",
				Signs: []edition.SignDoc{
					{SignInterpretations: []edition.InterpretationDoc{{
						ID: 1, Character: "א",
						Attributes:              []edition.AttributeDoc{{ID: 11, AttributeValueID: 1}},
						NextSignInterpretations: []uint32{2, 3},
					}}},
					{SignInterpretations: []edition.InterpretationDoc{
						{
							ID: 2, Character: "ב",
							Attributes:              []edition.AttributeDoc{{ID: 21, AttributeValueID: 1}},
							NextSignInterpretations: []uint32{4},
						},
						{
							ID: 3, Character: "כ",
							Attributes:              []edition.AttributeDoc{{ID: 31, AttributeValueID: 1}},
							NextSignInterpretations: []uint32{4},
						},
					}},
					{SignInterpretations: []edition.InterpretationDoc{{
						ID: 4, Character: "ל",
						Attributes: []edition.AttributeDoc{{ID: 41, AttributeValueID: 1}},
					}}},
				},
			}},
		}},
	}

	ed, err := edition.Build(doc)
	if err != nil {
		fmt.Println("build:", err)
		return
	}
	line := ed.Fragments()[0].Lines()[0]

	orders, err := linear.AllOrders(context.Background(), line, linear.Options{})
	if err != nil {
		fmt.Println("enumerate:", err)
		return
	}
	for _, o := range orders {
		fmt.Println(o.IDs())
	}
	// Output:
	// [1 2 4]
	// [1 3 4]
}
