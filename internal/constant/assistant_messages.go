package constant

// Fixed user-facing messages. The wording is part of the contract with the
// frontend, keep it stable.
const (
	MsgNoDocuments = "I don't have any documents to reference. Please upload documents first before asking questions about their content."

	MsgLowRelevance = "I couldn't find relevant information in the uploaded documents to answer your question. Please try rephrasing your question or check if the documents contain the information you're looking for."

	MsgEndOfDoc   = "You've reached the end of the document."
	MsgStartOfDoc = "You're at the beginning of the document."
)
