package gemini

// Canned responses served in demo mode (no API key) and whenever the live
// API fails or returns an unexpected shape. The contract of this client is
// "always answers, sometimes with placeholder content".

const cannedStudyPlan = `# 📚 Your Personalized Study Plan

## Priority Schedule:
1. **Final Project Proposal** (CS101) - Due Tomorrow
   - ⏰ Allocate 3-4 hours today
   - 📝 Focus on clear requirements and realistic timeline

2. **Data Structures Quiz** (CS101) - Due in 3 days
   - ⏰ 2 hours daily for review
   - 🌳 Practice binary tree traversal problems
   - 📊 Create visual diagrams for graph algorithms

3. **Calculus Problem Set 5** (MATH201) - Due Next Week
   - ⏰ 1 hour daily starting tomorrow
   - 📖 Review chapter 8 concepts first
   - ✍️ Work through similar examples

## Study Tips:
- Use the Pomodoro technique (25 min focused work + 5 min break)
- Start with the most challenging tasks when your energy is highest
- Form study groups for math problems
- Use Canvas discussion forums for clarifications

Stay organized and you've got this! 🎯`

const cannedAssignmentHelp = `# 🎯 Assignment Guidance

## Understanding the Requirements:
Break down your assignment into smaller, manageable tasks. Start by carefully reading all instructions and identifying key deliverables.

## Suggested Approach:
1. **Research Phase**: Gather relevant resources and materials
2. **Planning Phase**: Create an outline or structure
3. **Execution Phase**: Work on the main content
4. **Review Phase**: Check quality and completeness

## Time Management:
- Start early to avoid last-minute stress
- Set mini-deadlines for each phase
- Use timers to stay focused

## Quality Check:
- Review rubric requirements
- Proofread for clarity and errors
- Ask peers or instructors for feedback

You're on the right track! Keep up the great work! 💪`

const cannedNoPendingAssignments = `# 📚 Your Personalized Study Plan

No pending assignments with upcoming due dates right now. Use the time to review past material, get ahead on readings, or just recharge. 🎉`
