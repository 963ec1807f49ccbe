// Package models defines the per-flow form state schemas.
//
// Each flow's draft answers live in its own closed record: every field the wizard can
// collect is present in the struct, enumerated choices are string-typed unions whose
// zero value "" is the unset sentinel, and checklist groups are structs of booleans.
// Defaults are the zero value, applied at form initialization, never inside a builder.
// Form state is owned by the active wizard and discarded after the outcome is committed.
package models

// IdeationStatus codes the reported suicidal ideation on the safety flow.
type IdeationStatus string

const (
	IdeationNone        IdeationStatus = "none"
	IdeationPassive     IdeationStatus = "passive"
	IdeationActive      IdeationStatus = "active"
	IdeationFluctuating IdeationStatus = "fluctuating"
	IdeationNotAssessed IdeationStatus = "not_assessed"
)

// IntentPlanStatus codes stated plan and intent on the safety flow.
type IntentPlanStatus string

const (
	IntentPlanDenied      IntentPlanStatus = "denied"
	IntentPlanNoIntent    IntentPlanStatus = "plan_no_intent"
	IntentPlanActive      IntentPlanStatus = "active_intent"
	IntentPlanNotAssessed IntentPlanStatus = "not_assessed"
)

// RiskFormulation codes the overall acute risk formulation on the safety flow.
type RiskFormulation string

const (
	RiskLow          RiskFormulation = "low"
	RiskModerate     RiskFormulation = "moderate"
	RiskHigh         RiskFormulation = "high"
	RiskAcute        RiskFormulation = "acute"
	RiskNotFormulated RiskFormulation = "not_formulated"
)

// SafetyDisposition codes the recommended disposition on the safety flow.
type SafetyDisposition string

const (
	DispositionAdmitVoluntary   SafetyDisposition = "admit_voluntary"
	DispositionAdmitInvoluntary SafetyDisposition = "admit_involuntary"
	DispositionDischargePlan    SafetyDisposition = "discharge_safety_plan"
	DispositionContinueCare     SafetyDisposition = "continue_current_care"
)

// MeansAccessChecklist records which categories of lethal means were identified.
type MeansAccessChecklist struct {
	Firearms            bool `json:"firearms"`
	MedicationStockpile bool `json:"medication_stockpile"`
	Sharps              bool `json:"sharps"`
	OtherMeans          bool `json:"other_means"`
}

// ProtectiveFactorsChecklist records protective factors endorsed during the assessment.
type ProtectiveFactorsChecklist struct {
	FamilySupport     bool `json:"family_support"`
	ReligiousBeliefs  bool `json:"religious_beliefs"`
	FutureOrientation bool `json:"future_orientation"`
	TreatmentEngaged  bool `json:"treatment_engaged"`
}

// SafetyForm is the form state for the safety assessment flow.
type SafetyForm struct {
	IdeationStatus    IdeationStatus             `json:"ideation_status"`
	IntentPlanStatus  IntentPlanStatus           `json:"intent_plan_status"`
	PatientVerbatim   string                     `json:"patient_verbatim"`
	MeansAccess       MeansAccessChecklist       `json:"means_access"`
	ProtectiveFactors ProtectiveFactorsChecklist `json:"protective_factors"`
	RiskFormulation   RiskFormulation            `json:"risk_formulation"`
	Disposition       SafetyDisposition          `json:"disposition"`
}

// AgitationBaseline codes the patient's behavior relative to baseline.
type AgitationBaseline string

const (
	BaselineCalm        AgitationBaseline = "calm"
	BaselineRestless    AgitationBaseline = "restless"
	BaselineEscalating  AgitationBaseline = "escalating"
	BaselineAcuteChange AgitationBaseline = "acute_change"
)

// InjuryRiskProfile codes the immediate injury risk during an agitation episode.
type InjuryRiskProfile string

const (
	InjuryRiskLowStatic       InjuryRiskProfile = "low_static"
	InjuryRiskEscalatingVerbal InjuryRiskProfile = "escalating_verbal"
	InjuryRiskImminentPhysical InjuryRiskProfile = "imminent_physical"
	InjuryRiskActiveAssault   InjuryRiskProfile = "active_assaultive"
	InjuryRiskSelfDirected    InjuryRiskProfile = "self_directed"
)

// DeEscalationResponse codes the observed response to de-escalation attempts.
type DeEscalationResponse string

const (
	DeEscalationSettled     DeEscalationResponse = "settled"
	DeEscalationPartial     DeEscalationResponse = "partial"
	DeEscalationNoEffect    DeEscalationResponse = "no_effect"
	DeEscalationRefused     DeEscalationResponse = "refused_engagement"
	DeEscalationNotAttempted DeEscalationResponse = "not_attempted"
)

// PostInterventionMonitoring codes the monitoring arrangement after intervention.
type PostInterventionMonitoring string

const (
	MonitoringContinuous PostInterventionMonitoring = "continuous"
	MonitoringQ15        PostInterventionMonitoring = "q15"
	MonitoringRoutine    PostInterventionMonitoring = "routine"
	MonitoringHandoff    PostInterventionMonitoring = "handoff_to_primary"
)

// MedicalContributorsChecklist records reversible medical drivers considered.
type MedicalContributorsChecklist struct {
	Delirium     bool `json:"delirium"`
	Intoxication bool `json:"intoxication"`
	Withdrawal   bool `json:"withdrawal"`
	Pain         bool `json:"pain"`
	Hypoxia      bool `json:"hypoxia"`
}

// DeEscalationChecklist records de-escalation measures attempted before escalation.
type DeEscalationChecklist struct {
	VerbalDeEscalation  bool `json:"verbal_de_escalation"`
	EnvironmentModified bool `json:"environment_modified"`
	OralMedicationOffer bool `json:"oral_medication_offer"`
	FamilyInvolvement   bool `json:"family_involvement"`
}

// AgitationForm is the form state for the agitation / behavioral emergency flow.
type AgitationForm struct {
	Baseline            AgitationBaseline            `json:"baseline"`
	InjuryRiskProfile   InjuryRiskProfile            `json:"injury_risk_profile"`
	MedicalContributors MedicalContributorsChecklist `json:"medical_contributors"`
	DeEscalation        DeEscalationChecklist        `json:"de_escalation"`
	DeEscalationResult  DeEscalationResponse         `json:"de_escalation_result"`
	EscalationRationale string                       `json:"escalation_rationale"`
	Monitoring          PostInterventionMonitoring   `json:"monitoring"`
}

// CapacityDomain codes one of the four capacity domains (understanding, appreciation,
// reasoning) on the capacity flow.
type CapacityDomain string

const (
	DomainIntact         CapacityDomain = "intact"
	DomainPartial        CapacityDomain = "partial"
	DomainImpaired       CapacityDomain = "impaired"
	DomainUnableToAssess CapacityDomain = "unable_to_assess"
)

// ChoiceStability codes the stability of the patient's expressed choice.
type ChoiceStability string

const (
	ChoiceStable         ChoiceStability = "stable"
	ChoiceFluctuating    ChoiceStability = "fluctuating"
	ChoiceInconsistent   ChoiceStability = "inconsistent"
	ChoiceUnableToAssess ChoiceStability = "unable_to_assess"
)

// CapacityImpression codes the overall capacity impression.
type CapacityImpression string

const (
	ImpressionHasCapacity   CapacityImpression = "has_capacity"
	ImpressionLacksCapacity CapacityImpression = "lacks_capacity"
	ImpressionFluctuating   CapacityImpression = "fluctuating"
	ImpressionNotDetermined CapacityImpression = "not_determined"
)

// CapacityForm is the form state for the decision-making capacity flow.
type CapacityForm struct {
	DecisionContext string             `json:"decision_context"`
	Understanding   CapacityDomain     `json:"understanding"`
	Appreciation    CapacityDomain     `json:"appreciation"`
	Reasoning       CapacityDomain     `json:"reasoning"`
	ChoiceStability ChoiceStability    `json:"choice_stability"`
	Impression      CapacityImpression `json:"impression"`
	Recommendation  string             `json:"recommendation"`
}

// CatatoniaScreen codes whether the structured catatonia exam was performed.
type CatatoniaScreen string

const (
	ScreenCompleted   CatatoniaScreen = "completed"
	ScreenPartial     CatatoniaScreen = "partial"
	ScreenDeferred    CatatoniaScreen = "deferred"
	ScreenNotAssessed CatatoniaScreen = "not_assessed"
)

// CatatoniaSeverity codes the observed severity band. The empty-string unset value and
// the explicit "not_assessed" value render different phrases downstream; both variants
// must stay distinct.
type CatatoniaSeverity string

const (
	SeverityNoneObserved CatatoniaSeverity = "none_observed"
	SeverityMild         CatatoniaSeverity = "mild"
	SeverityModerate     CatatoniaSeverity = "moderate"
	SeveritySevere       CatatoniaSeverity = "severe"
	SeverityNotAssessed  CatatoniaSeverity = "not_assessed"
)

// LorazepamChallenge codes the result of a lorazepam challenge, if performed.
type LorazepamChallenge string

const (
	ChallengeMarkedImprovement LorazepamChallenge = "marked_improvement"
	ChallengePartialResponse   LorazepamChallenge = "partial_response"
	ChallengeNoChange          LorazepamChallenge = "no_change"
	ChallengeNotPerformed      LorazepamChallenge = "not_performed"
	ChallengeDeferred          LorazepamChallenge = "deferred"
)

// CatatoniaWorkupChecklist records the medical workup ordered alongside the screen.
type CatatoniaWorkupChecklist struct {
	CBC             bool `json:"cbc"`
	CMP             bool `json:"cmp"`
	CK              bool `json:"ck"`
	Neuroimaging    bool `json:"neuroimaging"`
	EEG             bool `json:"eeg"`
	InfectiousWorkup bool `json:"infectious_workup"`
}

// CatatoniaForm is the form state for the catatonia screening flow.
type CatatoniaForm struct {
	Screen          CatatoniaScreen          `json:"screen"`
	BushFrancisScore string                  `json:"bush_francis_score"`
	Severity        CatatoniaSeverity        `json:"severity"`
	Challenge       LorazepamChallenge       `json:"challenge"`
	Workup          CatatoniaWorkupChecklist `json:"workup"`
}

// LorazepamIndication codes the indication for the lorazepam trial.
type LorazepamIndication string

const (
	IndicationCatatonia         LorazepamIndication = "catatonia"
	IndicationAgitation         LorazepamIndication = "agitation"
	IndicationAlcoholWithdrawal LorazepamIndication = "alcohol_withdrawal"
	IndicationAnxiolysis        LorazepamIndication = "anxiolysis"
	IndicationOther             LorazepamIndication = "other"
)

// LorazepamResponse codes the observed response to the trial dose.
type LorazepamResponse string

const (
	LorazepamMarkedResponse  LorazepamResponse = "marked_response"
	LorazepamPartialResponse LorazepamResponse = "partial_response"
	LorazepamNoResponse      LorazepamResponse = "no_response"
	LorazepamAdverseEffect   LorazepamResponse = "adverse_effect"
	LorazepamPending         LorazepamResponse = "pending"
)

// VitalsMonitoringChecklist records parameters monitored around dosing.
type VitalsMonitoringChecklist struct {
	BloodPressure    bool `json:"blood_pressure"`
	HeartRate        bool `json:"heart_rate"`
	RespiratoryRate  bool `json:"respiratory_rate"`
	OxygenSaturation bool `json:"oxygen_saturation"`
	SedationLevel    bool `json:"sedation_level"`
}

// LorazepamForm is the form state for the lorazepam trial flow.
type LorazepamForm struct {
	Indication       LorazepamIndication       `json:"indication"`
	TestDose         string                    `json:"test_dose"`
	Response         LorazepamResponse         `json:"response"`
	VitalsMonitoring VitalsMonitoringChecklist `json:"vitals_monitoring"`
	TitrationPlan    string                    `json:"titration_plan"`
}

// ObservationRiskType codes the risk driving the observation order. The explicit
// "not_disclosed_here" variant renders its own phrase, distinct from the unset fallback.
type ObservationRiskType string

const (
	ObsRiskSuicide          ObservationRiskType = "suicide"
	ObsRiskSelfHarm         ObservationRiskType = "self_harm"
	ObsRiskViolence         ObservationRiskType = "violence"
	ObsRiskElopement        ObservationRiskType = "elopement"
	ObsRiskFalls            ObservationRiskType = "falls"
	ObsRiskNotDisclosedHere ObservationRiskType = "not_disclosed_here"
)

// ObservationLevel codes the ordered observation level.
type ObservationLevel string

const (
	ObsLevelContinuous       ObservationLevel = "continuous_1to1"
	ObsLevelLineOfSight      ObservationLevel = "line_of_sight"
	ObsLevelQ15              ObservationLevel = "q15"
	ObsLevelQ30              ObservationLevel = "q30"
	ObsLevelRoutine          ObservationLevel = "routine"
	ObsLevelNotDisclosedHere ObservationLevel = "not_disclosed_here"
)

// EnvironmentalSafetyChecklist records environmental safety measures in place.
type EnvironmentalSafetyChecklist struct {
	BelongingsSearched bool `json:"belongings_searched"`
	RoomSwept          bool `json:"room_swept"`
	CordsSharpsRemoved bool `json:"cords_sharps_removed"`
	DoorKeptOpen       bool `json:"door_kept_open"`
}

// ObservationForm is the form state for the observation-level flow.
type ObservationForm struct {
	RiskType            ObservationRiskType          `json:"risk_type"`
	ObservationLevel    ObservationLevel             `json:"observation_level"`
	EnvironmentalSafety EnvironmentalSafetyChecklist `json:"environmental_safety"`
	Handoff             string                       `json:"handoff"`
}

// GenericActionsChecklist records the standard actions taken for a structured note.
type GenericActionsChecklist struct {
	ChartReviewed       bool `json:"chart_reviewed"`
	TeamDiscussed       bool `json:"team_discussed"`
	FamilyDiscussed     bool `json:"family_discussed"`
	ConsultantContacted bool `json:"consultant_contacted"`
}

// GenericForm is the form state for the free-form structured note flow.
type GenericForm struct {
	Situation  string                  `json:"situation"`
	Assessment string                  `json:"assessment"`
	Actions    GenericActionsChecklist `json:"actions"`
	Plan       string                  `json:"plan"`
}
