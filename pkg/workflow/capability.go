package workflow

import (
	"context"
	"encoding/json"

	"github.com/redjoy12/MTGA-deck-builder/pkg/llm"
	"github.com/xeipuuv/gojsonschema"
)

// ProposalRequest carries one stage's context to the generative capability.
type ProposalRequest struct {
	System string
	Prompt string
}

// ProposalCapability produces a structured artifact from a stage context.
// Output is non-deterministic and must be assumed occasionally
// non-conforming to the declared schema.
type ProposalCapability interface {
	Propose(ctx context.Context, req ProposalRequest) (json.RawMessage, error)
}

const proposalTemperature = 0.2

// ClientCapability adapts an llm.ProposalClient to the ProposalCapability
// boundary, stripping code fences from the model's response.
type ClientCapability struct {
	client llm.ProposalClient
}

func NewClientCapability(client llm.ProposalClient) *ClientCapability {
	return &ClientCapability{client: client}
}

func (c *ClientCapability) Propose(ctx context.Context, req ProposalRequest) (json.RawMessage, error) {
	text, err := c.client.Complete(ctx, llm.Request{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: proposalTemperature,
	})
	if err != nil {
		return nil, err
	}

	return json.RawMessage(llm.ExtractJSON(text)), nil
}

const correctiveInstruction = "Your previous response did not conform to the required JSON schema. " +
	"Respond again with only a JSON object matching the schema exactly, with no surrounding prose. " +
	"Validation errors: "

// propose calls the generative capability and validates its output against
// the stage schema. A non-conforming response is retried once with a
// corrective instruction; a second failure escalates to a hard stage
// failure. Capability transport errors follow the same single-retry policy.
func propose(ctx context.Context, capability ProposalCapability, stage Stage, system, prompt string, schema *gojsonschema.Schema, out any) (json.RawMessage, error) {
	raw, err := capability.Propose(ctx, ProposalRequest{System: system, Prompt: prompt})
	if err != nil {
		raw, err = capability.Propose(ctx, ProposalRequest{System: system, Prompt: prompt})
		if err != nil {
			return nil, newStageFailure(stage, FailureCapability, err)
		}
	}

	validationErr := checkProposal(schema, raw, out)
	if validationErr == nil {
		return raw, nil
	}

	retryPrompt := prompt + "\n\n" + correctiveInstruction + validationErr.Error()

	raw, err = capability.Propose(ctx, ProposalRequest{System: system, Prompt: retryPrompt})
	if err != nil {
		return nil, newStageFailure(stage, FailureCapability, err)
	}

	if validationErr = checkProposal(schema, raw, out); validationErr != nil {
		return nil, newStageFailure(stage, FailureSchema, validationErr)
	}

	return raw, nil
}
