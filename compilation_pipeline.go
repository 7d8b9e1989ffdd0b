// compilation_pipeline.go - Explicit compilation stages with validation
package main

import (
	"fmt"
	"os"
)

// CompilationStage represents a stage in the compilation pipeline
type CompilationStage int

const (
	StageInit CompilationStage = iota
	StageParse
	StageGenerate
	StageEmit
	StageLink
	StageComplete
)

func (s CompilationStage) String() string {
	switch s {
	case StageInit:
		return "Initialization"
	case StageParse:
		return "Parsing"
	case StageGenerate:
		return "IR Generation"
	case StageEmit:
		return "Native Emission"
	case StageLink:
		return "Linking"
	case StageComplete:
		return "Compilation Complete"
	default:
		return fmt.Sprintf("Unknown Stage %d", s)
	}
}

// CompilationPipeline tracks the current stage and validates transitions.
// The pipeline is strictly linear and synchronous: each stage may only
// advance to its immediate successor.
type CompilationPipeline struct {
	currentStage CompilationStage
	stages       []CompilationStage // History of stages
}

func NewCompilationPipeline() *CompilationPipeline {
	return &CompilationPipeline{
		currentStage: StageInit,
		stages:       []CompilationStage{StageInit},
	}
}

func (cp *CompilationPipeline) AdvanceTo(stage CompilationStage) {
	if stage != cp.currentStage+1 {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid stage transition: %s -> %s\n", cp.currentStage, stage)
		fmt.Fprintf(os.Stderr, "Stage history:\n")
		for i, s := range cp.stages {
			fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, s)
		}
		panic(fmt.Sprintf("invalid compilation stage transition: %s -> %s", cp.currentStage, stage))
	}

	cp.currentStage = stage
	cp.stages = append(cp.stages, stage)

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "PIPELINE: Advanced to stage: %s\n", stage)
	}
}

func (cp *CompilationPipeline) CurrentStage() CompilationStage {
	return cp.currentStage
}
